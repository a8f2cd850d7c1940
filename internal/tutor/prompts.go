package tutor

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/skaufmann/sprachtutor/internal/provider"
)

const chatSystemPrompt = "You are a caring, patient, and professional German language tutor teaching an A2-level student. " +
	"Tailor your responses and examples to the A2 level. " +
	"Always write the main sentences and vocabulary in German, but provide explanations of grammar, vocabulary, and concepts in English, " +
	"unless the student explicitly requests explanations in German. " +
	"Maintain a supportive and encouraging tone."

const batchSystemPrompt = "You are a caring, patient, and professional German language tutor teaching an A2-level student. " +
	"Tailor examples to the A2 level, and maintain a supportive and encouraging tone."

const batchExampleJSON = `[
  {
    "root": "sprechen",
    "english": "to speak",
    "examples": {
      "present": ["Ich spreche Deutsch."],
      "past": ["Ich sprach gestern mit meinem Freund."],
      "future": ["Ich werde morgen sprechen."]
    }
  },
  {
    "root": "lernen",
    "english": "to learn",
    "examples": {
      "present": ["Ich lerne Deutsch."],
      "past": ["Ich lernte gestern neue Wörter."],
      "future": ["Ich werde morgen lernen."]
    }
  }
]`

// vocabSchemaJSON is the contract for structured batch output: a list of
// candidate words, each with a root, a gloss and tense-grouped example
// sentences.
const vocabSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "root": {
        "type": "string",
        "description": "The root form of the term or verb in German."
      },
      "english": {
        "type": "string",
        "description": "The English translation of the root term."
      },
      "examples": {
        "type": "object",
        "properties": {
          "present": {
            "type": "array",
            "description": "List of German sentences in the present tense.",
            "items": {"type": "string"}
          },
          "past": {
            "type": "array",
            "description": "List of German sentences in the past tense.",
            "items": {"type": "string"}
          },
          "future": {
            "type": "array",
            "description": "List of German sentences in the future tense.",
            "items": {"type": "string"}
          }
        },
        "required": ["present", "past", "future"],
        "additionalProperties": false
      }
    },
    "required": ["root", "english", "examples"],
    "additionalProperties": false
  }
}`

var (
	vocabSchemaOnce sync.Once
	vocabSchemaDef  map[string]any
)

func vocabBatchSchema() provider.Schema {
	vocabSchemaOnce.Do(func() {
		if err := json.Unmarshal([]byte(vocabSchemaJSON), &vocabSchemaDef); err != nil {
			panic("tutor: invalid embedded vocabulary schema: " + err.Error())
		}
	})
	return provider.Schema{Name: "german_vocabulary", Definition: vocabSchemaDef}
}

func batchPrompt(count int) []provider.Message {
	instruction := fmt.Sprintf(
		"Generate %d German vocabulary words with their English meanings "+
			"and examples in present, past, and future tense. Respond ONLY with valid JSON, "+
			"outputting a list of objects with keys 'root', 'english', and 'examples', "+
			"where 'examples' is a dict with keys 'present', 'past', and 'future' mapping to lists of German sentences. "+
			"Do not include any additional text or commentary outside the JSON array.", count)
	return []provider.Message{
		{Role: provider.RoleSystem, Content: batchSystemPrompt},
		{Role: provider.RoleSystem, Content: "Here are two examples of valid output following the schema:\n" + batchExampleJSON},
		{Role: provider.RoleSystem, Content: instruction},
	}
}
