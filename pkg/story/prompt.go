package story

import (
	"fmt"
	"strings"

	"lullaby/pkg/schema"
)

const (
	// MaxSegments is the length of an interactive story. The segment whose
	// incoming counter reaches it is the last one.
	MaxSegments = 4

	QuizQuestions = 3
	QuizOptions   = 3
)

type WordRange struct {
	Min int
	Max int
}

var wordRanges = map[string]WordRange{
	"breve": {Min: 600, Max: 900},
	"media": {Min: 1000, Max: 1500},
	"lunga": {Min: 1600, Max: 2000},
}

// WordRangeFor maps a storyLength value to its target word count. Unknown
// values fall back to the "breve" range; ok reports whether the value was known.
func WordRangeFor(storyLength string) (r WordRange, ok bool) {
	r, ok = wordRanges[storyLength]
	if !ok {
		return wordRanges["breve"], false
	}
	return r, true
}

// StoryPrompt renders the freeform bedtime story prompt.
func StoryPrompt(req schema.StoryRequest) string {
	words, _ := WordRangeFor(req.StoryLength)
	childName := strings.TrimSpace(req.ChildName)
	mainCharacter := strings.TrimSpace(req.MainCharacter)

	var b strings.Builder
	fmt.Fprintf(&b, "Sei un eccellente narratore di storie della buonanotte per bambini. Scrivi una storia originale e completa per un bambino nella fascia d'età %s.\n\n", req.AgeRange)
	fmt.Fprintf(&b, "La storia DEVE avere una lunghezza compresa tra %d e %d parole. Cerca di rispettare il più possibile questo intervallo, assicurandoti che la storia sia completa e coinvolgente.\n\n", words.Min, words.Max)

	b.WriteString("PROTAGONISTA PRINCIPALE:\n")
	protagonist := mainCharacter
	if childName != "" {
		protagonist = childName
		fmt.Fprintf(&b, "Il protagonista principale della storia si chiama %s. %s deve essere il vero centro dell'avventura.\n", childName, childName)
		if mainCharacter != "" {
			fmt.Fprintf(&b, "%s è un %s %s e fantastico/a.\n", childName, mainCharacter, braveAdjective(mainCharacter))
		}
		fmt.Fprintf(&b, "Usa frequentemente il nome \"%s\" durante la narrazione (almeno 8-10 volte), riferendoti al protagonista in modo naturale.\n", childName)
	} else {
		fmt.Fprintf(&b, "Il personaggio principale è %s.\nDalle sue caratteristiche e personalità unica.\n", mainCharacter)
	}

	b.WriteString("\nDETTAGLI PRINCIPALI:\n")
	fmt.Fprintf(&b, "- Tema: %s\n", req.Theme)
	fmt.Fprintf(&b, "- Ambientazione: %s\n", req.Setting)
	fmt.Fprintf(&b, "- Emozione prevalente da suscitare: %s\n", req.Emotion)

	if complexTheme := strings.TrimSpace(req.ComplexTheme); complexTheme != "" {
		fmt.Fprintf(&b, "\nTEMA COMPLESSO:\nIncludi delicatamente questo tema, adattandolo all'età %s: %s.\n", req.AgeRange, complexTheme)
	}
	if moral := strings.TrimSpace(req.Moral); moral != "" {
		fmt.Fprintf(&b, "\nMORALE:\nFai emergere naturalmente questa morale dalla storia, senza dichiararla esplicitamente: %s.\n", moral)
	}

	hero := "il protagonista"
	if childName != "" {
		hero = childName
	}
	b.WriteString("\nSTRUTTURA:\n")
	fmt.Fprintf(&b, "1. Inizio: Presenta %s e l'ambientazione in modo interessante\n", protagonist)
	fmt.Fprintf(&b, "2. Sviluppo: Descrivi un'avventura o situazione coinvolgente che %s deve affrontare\n", hero)
	b.WriteString("3. Conclusione: Termina con una risoluzione positiva e rassicurante, adatta per accompagnare il sonno\n")

	b.WriteString("\nSTILE:\n")
	fmt.Fprintf(&b, "- Usa un linguaggio semplice, positivo e coinvolgente adatto a bambini di %s\n", req.AgeRange)
	b.WriteString("- Crea un titolo accattivante per la storia\n")
	b.WriteString("- Evita elementi spaventosi, tristi o troppo complessi\n")
	b.WriteString("- Scrivi in paragrafi ben formati (NON usare elenchi puntati o simboli speciali)\n")
	b.WriteString("- Il testo deve essere pronto per essere letto come una vera storia della buonanotte\n")
	b.WriteString("- Concludi la storia in modo rassicurante\n")

	b.WriteString("\nInizia a scrivere la storia qui sotto:\n")
	return b.String()
}

// braveAdjective agrees "coraggioso" with the grammatical gender suggested by
// the character type: Italian feminine nouns mostly end in "a".
func braveAdjective(character string) string {
	if strings.HasSuffix(strings.ToLower(character), "a") {
		return "coraggiosa"
	}
	return "coraggioso"
}

// OpeningPrompt renders the first segment of an interactive story.
func OpeningPrompt(req schema.StoryRequest) string {
	childName := strings.TrimSpace(req.ChildName)
	mainCharacter := strings.TrimSpace(req.MainCharacter)

	protagonist := mainCharacter
	if childName != "" {
		protagonist = childName
		if mainCharacter != "" {
			protagonist += " (un " + mainCharacter + ")"
		}
	}

	var b strings.Builder
	b.WriteString("Genera l'inizio di una storia interattiva per bambini con i seguenti parametri:\n\n")
	fmt.Fprintf(&b, "Tema: %s\n", req.Theme)
	fmt.Fprintf(&b, "Personaggio principale: %s\n", protagonist)
	fmt.Fprintf(&b, "Ambiente: %s\n", req.Setting)
	fmt.Fprintf(&b, "Emozione principale: %s\n", req.Emotion)
	fmt.Fprintf(&b, "Fascia d'età: %s\n", req.AgeRange)
	if complexTheme := strings.TrimSpace(req.ComplexTheme); complexTheme != "" {
		fmt.Fprintf(&b, "Tema complesso: %s\n", complexTheme)
	}
	if moral := strings.TrimSpace(req.Moral); moral != "" {
		fmt.Fprintf(&b, "Morale: %s\n", moral)
	}
	if childName != "" {
		fmt.Fprintf(&b, "Nome del bambino: %s\n", childName)
	}

	b.WriteString(`
La storia deve:
1. Iniziare in modo coinvolgente
2. Presentare il personaggio principale e l'ambientazione
3. Creare una situazione interessante
4. Essere lunga circa 150-200 parole
5. Terminare con 2-3 scelte chiare per il lettore

`)
	fmt.Fprintf(&b, "Questo è il primo segmento di %d. La storia continuerà in base alle scelte del lettore.\n\n", MaxSegments)
	b.WriteString(segmentFormat(false, 1))
	return b.String()
}

// ContinuationPrompt renders the next segment after the reader picked an
// option. segmentCount is the already normalized incoming counter.
func ContinuationPrompt(storyHistory, chosenOption string, segmentCount int, final bool) string {
	var b strings.Builder
	b.WriteString("Genera il prossimo segmento di una storia interattiva per bambini. La storia finora è:\n\n")
	b.WriteString(storyHistory)
	fmt.Fprintf(&b, "\n\nScelta fatta: %s\n\n", chosenOption)

	if final {
		fmt.Fprintf(&b, "Questo è l'ultimo segmento della storia (segmento %d di %d).", MaxSegments, MaxSegments)
	} else {
		fmt.Fprintf(&b, "Questo è il segmento %d di %d.", segmentCount, MaxSegments)
	}
	b.WriteString(" Genera un segmento che continui la storia in modo coerente con la scelta fatta.\n\n")

	b.WriteString("Il segmento deve:\n")
	b.WriteString("1. Continuare la storia in modo coerente con la scelta fatta\n")
	if final {
		b.WriteString("2. Concludere la storia in modo soddisfacente\n")
	} else {
		b.WriteString("2. Preparare il terreno per le prossime scelte\n")
	}
	b.WriteString("3. Mantenere un tono adatto ai bambini\n")
	b.WriteString("4. Essere lungo circa 150-200 parole\n")
	if final {
		b.WriteString("5. Non includere scelte alla fine\n\n")
	} else {
		b.WriteString("5. Terminare con 2-3 scelte chiare per il lettore\n\n")
	}

	b.WriteString(segmentFormat(final, segmentCount+1))
	return b.String()
}

func segmentFormat(final bool, next int) string {
	choices := `["scelta 1", "scelta 2", "scelta 3"]`
	if final {
		choices = "[]"
	}
	return fmt.Sprintf(`Rispondi SOLO con un oggetto JSON nel seguente formato:
{
  "segment": "testo del segmento...",
  "choices": %s,
  "is_final": %t,
  "segmentCount": %d
}`, choices, final, next)
}

// QuizPrompt renders the comprehension quiz prompt for a finished story.
func QuizPrompt(storyText, ageRange string) string {
	difficulty := "Le domande dovrebbero essere semplici."
	if ageRange = strings.TrimSpace(ageRange); ageRange != "" {
		difficulty = fmt.Sprintf("Adatta la difficoltà delle domande e il linguaggio alla fascia d'età %s.", ageRange)
	}

	var b strings.Builder
	b.WriteString("Sei un esperto creatore di quiz per bambini basati su storie.\n")
	b.WriteString(difficulty)
	b.WriteString("\n\nCrea un quiz basato sulla seguente storia:\n")
	b.WriteString(storyText)
	fmt.Fprintf(&b, "\n\nGenera %d domande con %d opzioni di risposta ciascuna.\n", QuizQuestions, QuizOptions)
	b.WriteString(`Il formato della risposta deve essere un JSON con questa struttura ESATTA:
{
  "questions": [
    {
      "question": "testo della domanda",
      "options": ["opzione1", "opzione2", "opzione3"],
      "correctAnswerIndex": 0
    }
  ]
}

IMPORTANTE:
1. Le domande devono essere chiare e comprensibili
2. Le opzioni devono essere logiche e pertinenti
`)
	fmt.Fprintf(&b, "3. correctAnswerIndex deve essere l'indice (da 0 a %d) dell'opzione corretta nell'array\n", QuizOptions-1)
	b.WriteString("4. Rispondi SOLO con il JSON, senza testo aggiuntivo prima o dopo")
	return b.String()
}
