package schema

// StandardDoc mirrors plain Amazon Transcribe output. Timestamps and
// confidence values arrive as decimal strings and are converted downstream.
type StandardDoc struct {
	JobName   string          `json:"jobName"`
	AccountID string          `json:"accountId"`
	Status    string          `json:"status"`
	Results   StandardResults `json:"results"`
}

// StandardResults holds the transcript body. Speaker attribution comes from
// either diarization (speaker_labels) or per-channel items (channel_labels);
// both may be absent for single-speaker audio.
type StandardResults struct {
	Transcripts   []StandardTranscript  `json:"transcripts"`
	Items         []StandardItem        `json:"items"`
	SpeakerLabels *StandardSpeakers     `json:"speaker_labels"`
	ChannelLabels *StandardChannelsWrap `json:"channel_labels"`
}

// StandardTranscript is the whole-call text, unused beyond sanity checks.
type StandardTranscript struct {
	Transcript string `json:"transcript"`
}

// StandardItem is one recognized token: a timed pronunciation or an untimed
// punctuation mark that attaches to the preceding word.
type StandardItem struct {
	StartTime    string                `json:"start_time"`
	EndTime      string                `json:"end_time"`
	SpeakerLabel string                `json:"speaker_label"`
	Type         string                `json:"type"`
	Alternatives []StandardAlternative `json:"alternatives"`
}

// StandardAlternative carries the recognized text and its confidence.
type StandardAlternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

// StandardSpeakers is the diarization block.
type StandardSpeakers struct {
	Speakers int               `json:"speakers"`
	Segments []StandardSegment `json:"segments"`
}

// StandardSegment is one diarized span attributed to a single speaker.
type StandardSegment struct {
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time"`
	SpeakerLabel string            `json:"speaker_label"`
	Items        []StandardSegItem `json:"items"`
}

// StandardSegItem ties a diarized segment back to its word items by time.
type StandardSegItem struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SpeakerLabel string `json:"speaker_label"`
}

// StandardChannelsWrap is the channel-separated alternative to diarization.
type StandardChannelsWrap struct {
	NumberOfChannels int               `json:"number_of_channels"`
	Channels         []StandardChannel `json:"channels"`
}

// StandardChannel holds all items recognized on one audio channel.
type StandardChannel struct {
	ChannelLabel string         `json:"channel_label"`
	Items        []StandardItem `json:"items"`
}
