// Package summary serves the conversation summary shown for an upload. Until
// the analysis service exposes real results every summary uses the demo lines.
package summary

type Speaker string

const (
	SpeakerA Speaker = "speaker_a"
	SpeakerB Speaker = "speaker_b"
)

type Line struct {
	ID             string
	TimestampLabel string
	Speaker        Speaker
	Original       string
	Optimized      string
	Note           string
}

var demoLines = []Line{
	{
		ID:             "line-1",
		TimestampLabel: "00:08",
		Speaker:        SpeakerA,
		Original:       "I want discuss yesterday client call, it was a bit mess.",
		Optimized:      "I want to discuss yesterday's client call. It was a bit messy.",
		Note:           "Added missing infinitive and article; corrected adjective form.",
	},
	{
		ID:             "line-2",
		TimestampLabel: "00:15",
		Speaker:        SpeakerB,
		Original:       "Yes, we should align on next step and timeline soonly.",
		Optimized:      "Yes, we should align on the next steps and timeline soon.",
		Note:           "Corrected plural form and replaced non-standard adverb.",
	},
	{
		ID:             "line-3",
		TimestampLabel: "00:27",
		Speaker:        SpeakerA,
		Original:       "Can you send me the summary after this talking?",
		Optimized:      "Could you send me the summary after this discussion?",
		Note:           "Improved tone and replaced unnatural noun phrase.",
	},
}

// Lines returns the summary lines for summaryID.
func Lines(summaryID string) []Line {
	return append([]Line(nil), demoLines...)
}
