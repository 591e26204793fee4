package live

import (
	"context"
	"fmt"

	"github.com/bharatai/studio/internal/assets"
	"github.com/bharatai/studio/internal/audiocodec"
	"github.com/bharatai/studio/internal/engine"
	"google.golang.org/genai"
)

// liveVoiceName is the prebuilt voice for the creative-director persona.
const liveVoiceName = "Zephyr"

// GeminiDialer opens live transports against the Gemini realtime API.
type GeminiDialer struct {
	Client *genai.Client
	Model  string
}

// NewGeminiDialer returns a dialer over an existing Gemini client.
func NewGeminiDialer(client *genai.Client) *GeminiDialer {
	return &GeminiDialer{Client: client, Model: engine.ModelLive}
}

// Dial implements Dialer.
func (d *GeminiDialer) Dial(ctx context.Context) (Transport, error) {
	session, err := d.Client.Live.Connect(ctx, d.Model, &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: liveVoiceName},
			},
		},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: assets.LiveSystemPrompt}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect live session: %w", err)
	}
	return &geminiTransport{session: session}, nil
}

// geminiTransport adapts a Gemini live session to the Transport contract.
type geminiTransport struct {
	session *genai.Session
}

func (t *geminiTransport) Send(frame MediaFrame) error {
	pcm, err := audiocodec.Decode(frame.Data)
	if err != nil {
		return fmt.Errorf("invalid outbound frame: %w", err)
	}
	return t.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{MIMEType: frame.MIMEType, Data: pcm},
	})
}

func (t *geminiTransport) Receive() (*ServerMessage, error) {
	msg, err := t.session.Receive()
	if err != nil {
		return nil, err
	}

	out := &ServerMessage{}
	if sc := msg.ServerContent; sc != nil {
		out.Interrupted = sc.Interrupted
		if sc.ModelTurn != nil {
			for _, part := range sc.ModelTurn.Parts {
				if part.InlineData != nil && len(part.InlineData.Data) > 0 {
					out.Audio = audiocodec.Encode(part.InlineData.Data)
					break
				}
			}
		}
	}
	return out, nil
}

func (t *geminiTransport) Close() error {
	return t.session.Close()
}
