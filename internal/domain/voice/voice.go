package voice

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

const (
	DefaultLanguage = "fr-FR"

	simulatedAudioURL     = "data:audio/mp3;base64,simulated_audio_data"
	simulatedTranscript   = "Ceci est une transcription simulée"
	simulatedConfidence   = 0.95
	maxSniffedAudioLength = 3072
)

var voicesByLanguage = map[string][]string{
	"fr-FR": {"fr-FR-Standard-A", "fr-FR-Standard-B", "fr-FR-Wavenet-A"},
	"en-US": {"en-US-Standard-A", "en-US-Standard-B", "en-US-Wavenet-A"},
	"es-ES": {"es-ES-Standard-A"},
}

type SpeechResult struct {
	Success    bool   `json:"success"`
	AudioURL   string `json:"audioUrl"`
	Language   string `json:"language"`
	Voice      string `json:"voice,omitempty"`
	TextLength int    `json:"textLength"`
}

type TranscriptionResult struct {
	Success    bool    `json:"success"`
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	MimeType   string  `json:"mimeType,omitempty"`
}

// Service answers voice requests with simulated results; no speech engine is wired.
type Service struct {
	log zerolog.Logger
}

func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("component", "voice-service").Logger()}
}

// Voices lists the voices of a language, falling back to French.
func (s *Service) Voices(language string) []string {
	if voices, ok := voicesByLanguage[language]; ok {
		return append([]string(nil), voices...)
	}
	return append([]string(nil), voicesByLanguage[DefaultLanguage]...)
}

func (s *Service) TextToSpeech(_ context.Context, text, language, voiceName string) SpeechResult {
	if language == "" {
		language = DefaultLanguage
	}
	return SpeechResult{
		Success:    true,
		AudioURL:   simulatedAudioURL,
		Language:   language,
		Voice:      voiceName,
		TextLength: utf8.RuneCountInString(text),
	}
}

// SpeechToText accepts base64 audio, optionally as a data URL, and reports its detected type.
func (s *Service) SpeechToText(_ context.Context, audio, language string) TranscriptionResult {
	if language == "" {
		language = DefaultLanguage
	}
	return TranscriptionResult{
		Success:    true,
		Text:       simulatedTranscript,
		Language:   language,
		Confidence: simulatedConfidence,
		MimeType:   s.detectAudioType(audio),
	}
}

func (s *Service) detectAudioType(audio string) string {
	payload := audio
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}

	// only the header matters for sniffing
	if len(payload) > maxSniffedAudioLength {
		payload = payload[:maxSniffedAudioLength]
	}
	payload = payload[:len(payload)-len(payload)%4]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		s.log.Debug().Err(err).Msg("audio payload is not base64, skipping type detection")
		return ""
	}
	return mimetype.Detect(data).String()
}
