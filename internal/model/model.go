// Package model defines the canonical conversation model and the mapping
// functions that build it from each source variant. The model is built once
// and is read-only for every downstream stage.
package model

import (
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// SentimentLabel is the closed set of sentiment classifications.
type SentimentLabel string

const (
	SentimentPositive    SentimentLabel = "POSITIVE"
	SentimentNegative    SentimentLabel = "NEGATIVE"
	SentimentNeutral     SentimentLabel = "NEUTRAL"
	SentimentMixed       SentimentLabel = "MIXED"
	SentimentUnavailable SentimentLabel = "UNAVAILABLE"
)

// ParseSentimentLabel maps a source string onto the closed label set.
// Unrecognized values degrade to UNAVAILABLE rather than failing.
func ParseSentimentLabel(s string) SentimentLabel {
	switch SentimentLabel(s) {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return SentimentLabel(s)
	default:
		return SentimentUnavailable
	}
}

// Sentiment is a label with an optional numeric score. Call-analytics turns
// carry a label only; enriched standard-mode turns also carry a score.
type Sentiment struct {
	Label SentimentLabel
	Score *float64
}

// Conversation is the root of the canonical model. All downstream stages
// receive it by reference and must not mutate it.
type Conversation struct {
	Variant  schema.Variant
	Duration float64 // seconds
	Language string

	Speakers []Speaker
	Segments []Segment

	// Metadata is absent when the originating job no longer exists.
	Metadata Opt[CallMetadata]

	// Summary is the generative whole-call summary (BDA only).
	Summary Opt[string]

	// NativeSentiment is the service-computed call/quarter sentiment
	// (call-analytics only).
	NativeSentiment Opt[SentimentSummary]

	// NativeNonTalk and NativeInterruptions are the service-computed
	// silence spans and interruption source data (call-analytics only).
	NativeNonTalk       Opt[[]TimeRange]
	NativeInterruptions Opt[[]Interruption]

	Categories Opt[[]CategoryMatch]
	Topics     Opt[[]TopicMention]
	Entities   Opt[[]EntityMention]
	Guardrails Opt[[]GuardrailFlag]

	// Blueprint carries the custom-blueprint insights (BDA blueprint only).
	Blueprint Opt[BlueprintInsights]
}

// Speaker identifies one conversation participant. Derived aggregates such as
// talk time and interruption counts live in the analysis results, not here.
type Speaker struct {
	Index int
	Label string // channel index, diarized label, or participant role
}

// SpeakerByLabel returns the speaker with the given label.
func (c *Conversation) SpeakerByLabel(label string) (Speaker, bool) {
	for _, s := range c.Speakers {
		if s.Label == label {
			return s, true
		}
	}
	return Speaker{}, false
}

// Segment is one conversational turn attributed to a single speaker.
// Segments for a given speaker are time-ordered and non-overlapping, and
// words lie within the segment's time range.
type Segment struct {
	Speaker  string
	Start    float64
	End      float64
	Text     string
	Language string
	Words    []Word

	// Sentiment is the native per-turn sentiment. NotApplicable for
	// standard transcripts, which can only be enriched externally.
	Sentiment Opt[Sentiment]

	// Loudness is the per-turn volume series (call-analytics only).
	Loudness Opt[[]float64]

	// Issues are detected-issue character ranges into Text
	// (call-analytics only).
	Issues Opt[[]IssueMatch]

	// Guardrails are the moderation results anchored to this turn
	// (BDA only). All flags are retained regardless of threshold;
	// filtering happens at analysis time.
	Guardrails Opt[[]GuardrailFlag]
}

// Midpoint returns the temporal midpoint of the segment.
func (s Segment) Midpoint() float64 {
	return (s.Start + s.End) / 2
}

// DurationSeconds returns the segment length.
func (s Segment) DurationSeconds() float64 {
	return s.End - s.Start
}

// Word is one recognized token. Confidence is nil for sources that never
// carry word confidence (BDA).
type Word struct {
	Text       string
	Start      float64
	End        float64
	Confidence *float64
}

// TimeRange is a span of call time in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

// Interruption records one speaker starting before another finished.
type Interruption struct {
	Interrupter string
	Start       float64
	End         float64
}

// SentimentSummary is the service-computed sentiment aggregate.
type SentimentSummary struct {
	// Overall maps speaker label to the whole-call score over [-5,+5].
	Overall map[string]float64
	// Quarters holds one entry per speaker per quarter (1..4).
	Quarters []QuarterScore
}

// QuarterScore is one speaker's aggregate sentiment over one call quarter.
// HasData is false when no qualifying turns fell into the window.
type QuarterScore struct {
	Speaker string
	Quarter int // 1..4
	Score   float64
	HasData bool
}

// CategoryMatch is a matched category rule with its trigger timestamps.
type CategoryMatch struct {
	Name    string
	Anchors []float64 // seconds
}

// IssueMatch is a detected issue as a character range into segment text.
type IssueMatch struct {
	Begin int
	End   int
}

// TopicMention is one detected topic; only its start is marked inline.
type TopicMention struct {
	Index   int
	Start   float64
	End     float64
	Summary string
}

// EntityMention is one extracted entity with its source tags.
type EntityMention struct {
	Text string
	Tags []string
}

// GuardrailFlag is one content-safety result with its confidence score.
type GuardrailFlag struct {
	Category   string
	Confidence float64
	Start      float64
	End        float64
}

// CallMetadata is job-level information for the summary section. Individual
// fields may be empty; the renderer substitutes placeholders.
type CallMetadata struct {
	JobName        string
	AccountID      string
	Status         string
	LanguageCode   string
	MediaFile      string
	MediaFormat    string
	SampleRateKHz  int
	VocabularyName string
	Redaction      bool
}

// BlueprintInsights is the canonical form of the custom-blueprint output.
type BlueprintInsights struct {
	Summary string

	Categories     []string
	Topics         []string
	Issues         []string
	Intents        []string
	AgentActions   []string
	PendingActions []string

	// Dial values over 1..5.
	CallerSatisfaction int
	CallerEmotion      int
	AgentEmotion       int

	IssueResolved         bool
	CallOpening           bool
	CallWrapup            bool
	CallerNegativeEmotion bool

	CallerSentiment SentimentNarrative
	AgentSentiment  SentimentNarrative
}

// SentimentNarrative is the generative per-participant sentiment block.
type SentimentNarrative struct {
	Summary      string
	EmotionLabel string
	EndSentiment string
	Improvement  string
}
