package schema

// AnalyticsDoc mirrors Transcribe Call Analytics post-call output. Unlike the
// standard schema, offsets are integer milliseconds and sentiment, categories
// and conversation characteristics are computed natively by the service.
type AnalyticsDoc struct {
	JobName                     string               `json:"JobName"`
	JobStatus                   string               `json:"JobStatus"`
	LanguageCode                string               `json:"LanguageCode"`
	AccountID                   string               `json:"AccountId"`
	Transcript                  []AnalyticsTurn      `json:"Transcript"`
	Categories                  *AnalyticsCategories `json:"Categories"`
	ConversationCharacteristics *AnalyticsCharacter  `json:"ConversationCharacteristics"`
}

// AnalyticsTurn is one conversational turn with native per-turn sentiment.
type AnalyticsTurn struct {
	ID                string           `json:"Id"`
	ParticipantRole   string           `json:"ParticipantRole"`
	Content           string           `json:"Content"`
	BeginOffsetMillis int64            `json:"BeginOffsetMillis"`
	EndOffsetMillis   int64            `json:"EndOffsetMillis"`
	Sentiment         string           `json:"Sentiment"`
	LoudnessScores    []float64        `json:"LoudnessScores"`
	Items             []AnalyticsItem  `json:"Items"`
	IssuesDetected    []AnalyticsIssue `json:"IssuesDetected"`
}

// AnalyticsItem is one recognized token within a turn.
type AnalyticsItem struct {
	Type              string  `json:"Type"`
	Content           string  `json:"Content"`
	Confidence        float64 `json:"Confidence"`
	BeginOffsetMillis int64   `json:"BeginOffsetMillis"`
	EndOffsetMillis   int64   `json:"EndOffsetMillis"`
}

// AnalyticsIssue marks a detected issue as a character range into the turn.
type AnalyticsIssue struct {
	CharacterOffsets AnalyticsCharRange `json:"CharacterOffsets"`
}

// AnalyticsCharRange is a half-open character span within turn content.
type AnalyticsCharRange struct {
	Begin int `json:"Begin"`
	End   int `json:"End"`
}

// AnalyticsCategories lists matched category rules and where they fired.
type AnalyticsCategories struct {
	MatchedCategories []string                           `json:"MatchedCategories"`
	MatchedDetails    map[string]AnalyticsCategoryDetail `json:"MatchedDetails"`
}

// AnalyticsCategoryDetail holds the trigger points for one category.
type AnalyticsCategoryDetail struct {
	PointsOfInterest []AnalyticsTimeRange `json:"PointsOfInterest"`
}

// AnalyticsTimeRange is a millisecond time span within the call.
type AnalyticsTimeRange struct {
	BeginOffsetMillis int64 `json:"BeginOffsetMillis"`
	EndOffsetMillis   int64 `json:"EndOffsetMillis"`
}

// AnalyticsCharacter is the call-level characteristics block.
type AnalyticsCharacter struct {
	TotalConversationDurationMillis int64                   `json:"TotalConversationDurationMillis"`
	NonTalkTime                     *AnalyticsNonTalk       `json:"NonTalkTime"`
	TalkTime                        *AnalyticsTalkTime      `json:"TalkTime"`
	Interruptions                   *AnalyticsInterruptions `json:"Interruptions"`
	Sentiment                       *AnalyticsSentiment     `json:"Sentiment"`
}

// AnalyticsNonTalk describes silence across the whole call.
type AnalyticsNonTalk struct {
	TotalTimeMillis int64                `json:"TotalTimeMillis"`
	Instances       []AnalyticsTimeRange `json:"Instances"`
}

// AnalyticsTalkTime describes per-participant speaking time.
type AnalyticsTalkTime struct {
	TotalTimeMillis      int64                              `json:"TotalTimeMillis"`
	DetailsByParticipant map[string]AnalyticsTalkTimeDetail `json:"DetailsByParticipant"`
}

// AnalyticsTalkTimeDetail is one participant's total speaking time.
type AnalyticsTalkTimeDetail struct {
	TotalTimeMillis int64 `json:"TotalTimeMillis"`
}

// AnalyticsInterruptions describes who interrupted whom.
type AnalyticsInterruptions struct {
	TotalCount                 int64                           `json:"TotalCount"`
	TotalTimeMillis            int64                           `json:"TotalTimeMillis"`
	InterruptionsByInterrupter map[string][]AnalyticsTimeRange `json:"InterruptionsByInterrupter"`
}

// AnalyticsSentiment carries the native whole-call and per-quarter scores.
type AnalyticsSentiment struct {
	OverallSentiment  map[string]float64                  `json:"OverallSentiment"`
	SentimentByPeriod map[string]map[string][]QuarterSpan `json:"SentimentByPeriod"`
}

// QuarterSpan is one participant's sentiment score over one time period.
type QuarterSpan struct {
	Score             float64 `json:"Score"`
	BeginOffsetMillis int64   `json:"BeginOffsetMillis"`
	EndOffsetMillis   int64   `json:"EndOffsetMillis"`
}
