package schema

// BDADoc mirrors Bedrock Data Automation audio output. Words never carry a
// confidence score in this schema.
type BDADoc struct {
	Metadata      BDAMetadata  `json:"metadata"`
	Audio         *BDAAudio    `json:"audio"`
	AudioSegments []BDASegment `json:"audio_segments"`
	AudioItems    []BDAItem    `json:"audio_items"`
	Topics        []BDATopic   `json:"topics"`
	Statistics    *BDAStats    `json:"statistics"`
}

// BDAMetadata describes the source asset.
type BDAMetadata struct {
	S3Key                    string `json:"s3_key"`
	DurationMillis           int64  `json:"duration_millis"`
	SampleRate               int    `json:"sample_rate"`
	Format                   string `json:"format"`
	DominantAssetLanguage    string `json:"dominant_asset_language"`
	GenerativeOutputLanguage string `json:"generative_output_language"`
}

// BDAAudio holds call-level generative output and guardrail results.
type BDAAudio struct {
	Summary           string          `json:"summary"`
	ContentModeration []BDAModeration `json:"content_moderation"`
}

// BDAModeration is the guardrail result for one segment span.
type BDAModeration struct {
	StartTimestampMillis int64                   `json:"start_timestamp_millis"`
	EndTimestampMillis   int64                   `json:"end_timestamp_millis"`
	Categories           []BDAModerationCategory `json:"moderation_categories"`
}

// BDAModerationCategory is one guardrail category with its confidence.
type BDAModerationCategory struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// BDASegment is one conversational turn, pre-segmented by the service.
type BDASegment struct {
	StartTimestampMillis int64      `json:"start_timestamp_millis"`
	EndTimestampMillis   int64      `json:"end_timestamp_millis"`
	Speaker              BDASpeaker `json:"speaker"`
	Text                 string     `json:"text"`
	Language             string     `json:"language"`
	Sentiment            string     `json:"sentiment"`
	AudioItemIndices     []int      `json:"audio_item_indices"`
}

// BDASpeaker is the diarized speaker reference for a segment.
type BDASpeaker struct {
	SpeakerLabel string `json:"speaker_label"`
}

// BDAItem is one token. Punctuation items carry no timestamps and attach to
// the preceding word.
type BDAItem struct {
	Content              string `json:"content"`
	StartTimestampMillis *int64 `json:"start_timestamp_millis"`
	EndTimestampMillis   *int64 `json:"end_timestamp_millis"`
}

// BDATopic is one detected conversational topic with its start anchor.
type BDATopic struct {
	TopicIndex           int    `json:"topic_index"`
	StartTimestampMillis int64  `json:"start_timestamp_millis"`
	EndTimestampMillis   int64  `json:"end_timestamp_millis"`
	Summary              string `json:"summary"`
}

// BDAStats carries counts the service derives during processing.
type BDAStats struct {
	SpeakerCount int `json:"speaker_count"`
}

// BlueprintDoc mirrors the custom-blueprint result produced alongside BDA
// audio output. All fields live under inference_result.
type BlueprintDoc struct {
	MatchedBlueprint *BlueprintMatch  `json:"matched_blueprint"`
	InferenceResult  *BlueprintResult `json:"inference_result"`
}

// BlueprintMatch identifies which customer blueprint produced the result.
type BlueprintMatch struct {
	ARN        string  `json:"blueprint_arn"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// BlueprintResult is the customer-defined extraction output: list fields,
// scalar 1-5 ratings, boolean call-success checks and generative summaries.
type BlueprintResult struct {
	CallSummary string `json:"call_summary"`

	CallCategories          []string `json:"call_categories"`
	CallTopics              []string `json:"call_topics"`
	CallIssues              []string `json:"call_issues"`
	CallIntents             []string `json:"call_intents"`
	AgentActions            []string `json:"agent_actions"`
	AgentPendingActionItems []string `json:"agent_pending_action_items"`

	CallerSatisfactionLevel float64 `json:"caller_satisfaction_level"`
	CallerEmotionRating     float64 `json:"caller_emotion_rating"`
	AgentEmotionRating      float64 `json:"agent_emotion_rating"`

	IssueResolution       bool `json:"issue_resolution"`
	CallOpening           bool `json:"call_opening"`
	CallWrapup            bool `json:"call_wrapup"`
	CallerNegativeEmotion bool `json:"caller_negative_emotion"`

	CallerSentimentSummary   string `json:"caller_sentiment_summary"`
	CallerEmotionLabel       string `json:"caller_emotion_label"`
	CallerEndSentiment       string `json:"caller_end_sentiment"`
	CallerEmotionImprovement string `json:"caller_emotion_improvement"`
	AgentSentimentSummary    string `json:"agent_sentiment_summary"`
	AgentEmotionLabel        string `json:"agent_emotion_label"`
	AgentEndSentiment        string `json:"agent_end_sentiment"`

	DetectedEntities []BlueprintEntity `json:"detected_entities"`
}

// BlueprintEntity is one extracted entity with its classification tags.
type BlueprintEntity struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}
