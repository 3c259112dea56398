package schema

import (
	"errors"
	"testing"
)

const standardJSON = `{
	"jobName": "call-42",
	"accountId": "123456789012",
	"status": "COMPLETED",
	"results": {
		"transcripts": [{"transcript": "hello there"}],
		"items": [
			{"start_time": "0.0", "end_time": "0.4", "type": "pronunciation",
			 "alternatives": [{"confidence": "0.99", "content": "hello"}]},
			{"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "."}]}
		],
		"speaker_labels": {
			"speakers": 1,
			"segments": [{"start_time": "0.0", "end_time": "0.4", "speaker_label": "spk_0", "items": []}]
		}
	}
}`

const analyticsJSON = `{
	"JobStatus": "COMPLETED",
	"LanguageCode": "en-US",
	"Transcript": [
		{"Id": "t1", "ParticipantRole": "AGENT", "Content": "hello",
		 "BeginOffsetMillis": 0, "EndOffsetMillis": 900, "Sentiment": "NEUTRAL",
		 "Items": [{"Type": "pronunciation", "Content": "hello", "Confidence": 0.98,
					"BeginOffsetMillis": 0, "EndOffsetMillis": 400}]}
	],
	"ConversationCharacteristics": {
		"TotalConversationDurationMillis": 900,
		"Sentiment": {"OverallSentiment": {"AGENT": 1.5}}
	}
}`

const bdaJSON = `{
	"metadata": {"s3_key": "calls/a.wav", "duration_millis": 20000, "sample_rate": 8,
				 "format": "wav", "dominant_asset_language": "en", "generative_output_language": "en"},
	"audio": {"summary": "A short call."},
	"audio_segments": [
		{"start_timestamp_millis": 0, "end_timestamp_millis": 5000,
		 "speaker": {"speaker_label": "spk_0"}, "text": "hello", "language": "EN",
		 "sentiment": "NEUTRAL", "audio_item_indices": [0]}
	],
	"audio_items": [
		{"content": "hello", "start_timestamp_millis": 0, "end_timestamp_millis": 400}
	]
}`

const blueprintJSON = `{
	"inference_result": {
		"call_summary": "ok",
		"caller_satisfaction_level": 4,
		"issue_resolution": true
	}
}`

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Variant
	}{
		{"standard", standardJSON, VariantStandard},
		{"call analytics", analyticsJSON, VariantCallAnalytics},
		{"bda audio", bdaJSON, VariantBDAAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect([]byte(tt.raw), VariantUnknown)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectRejectsUnknown(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `this is not json`},
		{"json array", `[1,2,3]`},
		{"unrelated object", `{"foo": 1, "bar": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Detect([]byte(tt.raw), VariantUnknown)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("Detect() error = %v, want *SchemaError", err)
			}
		})
	}
}

func TestDetectHintMismatch(t *testing.T) {
	_, err := Detect([]byte(bdaJSON), VariantStandard)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Detect() error = %v, want *SchemaError", err)
	}
}

func TestParseStandard(t *testing.T) {
	doc, err := Parse([]byte(standardJSON), VariantUnknown, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Variant != VariantStandard {
		t.Errorf("Variant = %v, want %v", doc.Variant, VariantStandard)
	}
	if doc.Standard == nil {
		t.Fatal("Standard tree is nil")
	}
	if doc.Standard.JobName != "call-42" {
		t.Errorf("JobName = %q, want call-42", doc.Standard.JobName)
	}
	if len(doc.Standard.Results.Items) != 2 {
		t.Errorf("Items = %d, want 2", len(doc.Standard.Results.Items))
	}
}

func TestParseAnalytics(t *testing.T) {
	doc, err := Parse([]byte(analyticsJSON), VariantUnknown, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Analytics == nil {
		t.Fatal("Analytics tree is nil")
	}
	if got := doc.Analytics.ConversationCharacteristics.TotalConversationDurationMillis; got != 900 {
		t.Errorf("TotalConversationDurationMillis = %d, want 900", got)
	}
}

func TestParseBDAWithBlueprint(t *testing.T) {
	doc, err := Parse([]byte(bdaJSON), VariantUnknown, []byte(blueprintJSON))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Variant != VariantBDABlueprint {
		t.Errorf("Variant = %v, want %v", doc.Variant, VariantBDABlueprint)
	}
	if doc.Blueprint == nil || doc.Blueprint.InferenceResult == nil {
		t.Fatal("Blueprint inference result is nil")
	}
	if doc.Blueprint.InferenceResult.CallerSatisfactionLevel != 4 {
		t.Errorf("CallerSatisfactionLevel = %f, want 4", doc.Blueprint.InferenceResult.CallerSatisfactionLevel)
	}
}

func TestParseBlueprintRequiresBDA(t *testing.T) {
	_, err := Parse([]byte(standardJSON), VariantUnknown, []byte(blueprintJSON))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("Parse() error = %v, want *SchemaError", err)
	}
}
