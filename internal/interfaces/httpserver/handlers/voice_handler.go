package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/voice"
	"koita-chat-api/internal/interfaces/httpserver/requests"
	"koita-chat-api/internal/interfaces/httpserver/responses"
)

type VoiceService interface {
	Voices(language string) []string
	TextToSpeech(ctx context.Context, text, language, voiceName string) voice.SpeechResult
	SpeechToText(ctx context.Context, audio, language string) voice.TranscriptionResult
}

// VoiceHandler exposes the simulated /api/voice endpoints.
type VoiceHandler struct {
	voices VoiceService
	log    zerolog.Logger
}

func NewVoiceHandler(voices VoiceService, log zerolog.Logger) *VoiceHandler {
	return &VoiceHandler{
		voices: voices,
		log:    log.With().Str("handler", "voice").Logger(),
	}
}

// Voices handles GET /api/voice/voices
// @Summary List voices
// @Tags Voice
// @Security BearerAuth
// @Produce json
// @Param language query string false "Language tag" default(fr-FR)
// @Success 200 {object} responses.VoicesResponse
// @Router /api/voice/voices [get]
func (h *VoiceHandler) Voices(c *gin.Context) {
	language := c.DefaultQuery("language", voice.DefaultLanguage)
	c.JSON(http.StatusOK, responses.VoicesResponse{Voices: h.voices.Voices(language)})
}

// TextToSpeech handles POST /api/voice/text-to-speech
// @Summary Synthesize speech (simulated)
// @Tags Voice
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.TextToSpeechRequest true "Text"
// @Success 200 {object} voice.SpeechResult
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /api/voice/text-to-speech [post]
func (h *VoiceHandler) TextToSpeech(c *gin.Context) {
	var req requests.TextToSpeechRequest
	if !bindJSON(c, &req, h.log) {
		return
	}
	c.JSON(http.StatusOK, h.voices.TextToSpeech(c.Request.Context(), req.Text, req.Language, req.Voice))
}

// SpeechToText handles POST /api/voice/speech-to-text
// @Summary Transcribe speech (simulated)
// @Tags Voice
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.SpeechToTextRequest true "Base64 audio or data URL"
// @Success 200 {object} voice.TranscriptionResult
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /api/voice/speech-to-text [post]
func (h *VoiceHandler) SpeechToText(c *gin.Context) {
	var req requests.SpeechToTextRequest
	if !bindJSON(c, &req, h.log) {
		return
	}
	c.JSON(http.StatusOK, h.voices.SpeechToText(c.Request.Context(), req.Audio, req.Language))
}
