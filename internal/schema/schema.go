// Package schema classifies raw speech-analytics result documents into one of
// the known source variants and parses them into variant-tagged trees.
// It performs no normalization; building the canonical conversation model is
// the model package's job.
package schema

import (
	"encoding/json"
	"fmt"
)

// Variant identifies the back end that produced a result document.
type Variant string

const (
	// VariantUnknown is the zero value, used when no hint is available.
	VariantUnknown Variant = ""

	// VariantStandard is plain Amazon Transcribe output.
	VariantStandard Variant = "standard"

	// VariantCallAnalytics is Transcribe Call Analytics post-call output.
	VariantCallAnalytics Variant = "call-analytics"

	// VariantBDAAudio is Bedrock Data Automation audio output.
	VariantBDAAudio Variant = "bda-audio"

	// VariantBDABlueprint is BDA audio output paired with a custom
	// blueprint inference result.
	VariantBDABlueprint Variant = "bda-audio-blueprint"
)

// String returns the string representation of the variant.
func (v Variant) String() string {
	if v == VariantUnknown {
		return "unknown"
	}
	return string(v)
}

// SchemaError reports input that is not well-formed or matches no known
// variant. It is fatal for the whole job.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("schema: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Document is the variant-tagged parse tree returned by Parse.
// Exactly one of the variant pointers is set, matching Variant; Blueprint is
// additionally set for VariantBDABlueprint.
type Document struct {
	Variant   Variant
	Standard  *StandardDoc
	Analytics *AnalyticsDoc
	BDA       *BDADoc
	Blueprint *BlueprintDoc
}

// Detect classifies raw bytes into a variant by inspecting top-level
// structural markers. A non-empty hint narrows the decision but the document
// must still carry that variant's markers.
func Detect(raw []byte, hint Variant) (Variant, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return VariantUnknown, &SchemaError{Reason: "input is not a JSON object", Err: err}
	}

	detected := classify(top)
	if detected == VariantUnknown {
		return VariantUnknown, &SchemaError{Reason: "document matches no known result schema"}
	}

	if hint != VariantUnknown && hint != detected {
		return VariantUnknown, &SchemaError{
			Reason: fmt.Sprintf("document is %s output but %s was requested", detected, hint),
		}
	}

	return detected, nil
}

func classify(top map[string]json.RawMessage) Variant {
	_, hasCharacteristics := top["ConversationCharacteristics"]
	_, hasTranscript := top["Transcript"]
	if hasCharacteristics || hasTranscript {
		return VariantCallAnalytics
	}

	_, hasSegments := top["audio_segments"]
	_, hasAudio := top["audio"]
	if hasSegments || hasAudio {
		return VariantBDAAudio
	}

	_, hasResults := top["results"]
	if hasResults {
		return VariantStandard
	}

	return VariantUnknown
}

// Parse detects the variant of raw and unmarshals it into the matching tree.
// custom holds the optional blueprint result bytes for BDA input; passing it
// upgrades the variant to VariantBDABlueprint.
func Parse(raw []byte, hint Variant, custom []byte) (*Document, error) {
	variant, err := Detect(raw, hint)
	if err != nil {
		return nil, err
	}

	doc := &Document{Variant: variant}

	switch variant {
	case VariantStandard:
		doc.Standard = &StandardDoc{}
		if err := json.Unmarshal(raw, doc.Standard); err != nil {
			return nil, &SchemaError{Reason: "malformed standard transcript", Err: err}
		}
	case VariantCallAnalytics:
		doc.Analytics = &AnalyticsDoc{}
		if err := json.Unmarshal(raw, doc.Analytics); err != nil {
			return nil, &SchemaError{Reason: "malformed call-analytics result", Err: err}
		}
	case VariantBDAAudio:
		doc.BDA = &BDADoc{}
		if err := json.Unmarshal(raw, doc.BDA); err != nil {
			return nil, &SchemaError{Reason: "malformed BDA audio result", Err: err}
		}
	}

	if len(custom) > 0 {
		if variant != VariantBDAAudio {
			return nil, &SchemaError{Reason: "custom blueprint output is only valid with BDA audio input"}
		}
		doc.Blueprint = &BlueprintDoc{}
		if err := json.Unmarshal(custom, doc.Blueprint); err != nil {
			return nil, &SchemaError{Reason: "malformed blueprint result", Err: err}
		}
		if doc.Blueprint.InferenceResult == nil {
			return nil, &SchemaError{Reason: "blueprint result has no inference_result"}
		}
		doc.Variant = VariantBDABlueprint
	}

	return doc, nil
}
