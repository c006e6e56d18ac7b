package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	listenv1rest "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	restinterfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest/interfaces"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	listenClient "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"

	"github.com/vodscribe/vodscribe/internal/audio"
	"github.com/vodscribe/vodscribe/internal/resilience"
)

// DeepgramEngine transcribes chunks through Deepgram's prerecorded REST API.
// Chunk samples are shipped as raw linear16 PCM; returned utterances map onto
// the local segment contract. Every call is guarded by a retry policy and a
// circuit breaker shared across chunks, so a dead API turns into fast
// per-chunk failures instead of a stalled run.
type DeepgramEngine struct {
	client   *listenv1rest.Client
	model    string
	language string
	retry    *resilience.RetryConfig
	breaker  *resilience.CircuitBreaker
}

// NewDeepgramEngine creates a prerecorded transcription client.
func NewDeepgramEngine(apiKey, model, language string, retry *resilience.RetryConfig, breaker *resilience.CircuitBreaker) (*DeepgramEngine, error) {
	if apiKey == "" {
		return nil, errors.New("deepgram api key is required")
	}
	c := listenClient.NewREST(apiKey, &interfaces.ClientOptions{})
	return &DeepgramEngine{
		client:   listenv1rest.New(c),
		model:    model,
		language: language,
		retry:    retry,
		breaker:  breaker,
	}, nil
}

// TranscribeChunk sends one chunk's samples to Deepgram and returns its
// utterances as chunk-local segments.
func (e *DeepgramEngine) TranscribeChunk(ctx context.Context, samples []float32, sampleRate int) ([]RawSegment, error) {
	if len(samples) == 0 {
		return nil, nil
	}

	pcm := audio.PCM16Bytes(samples)
	options := &interfaces.PreRecordedTranscriptionOptions{
		Model:      e.model,
		Language:   e.language,
		Punctuate:  true,
		Utterances: true,
		Encoding:   "linear16",
		SampleRate: sampleRate,
		Channels:   1,
	}

	chunkSeconds := float64(len(samples)) / float64(sampleRate)

	var segs []RawSegment
	call := func() error {
		res, err := e.client.FromStream(ctx, bytes.NewReader(pcm), options)
		if err != nil {
			return fmt.Errorf("deepgram request: %w", err)
		}
		segs, err = segmentsFromResponse(res, chunkSeconds)
		return err
	}

	err := e.breaker.Call(func() error {
		return resilience.Retry(ctx, e.retry, call, func(err error) bool {
			// context errors are not worth retrying
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		})
	})
	if err != nil {
		return nil, err
	}
	return segs, nil
}

// segmentsFromResponse maps a prerecorded API response onto chunk-local
// segments. The API can answer 2xx with no results payload at all, so a
// missing Results is an error the caller turns into a chunk anomaly, never a
// dereference.
func segmentsFromResponse(res *restinterfaces.PreRecordedResponse, chunkSeconds float64) ([]RawSegment, error) {
	if res == nil || res.Results == nil {
		return nil, errors.New("deepgram response has no results")
	}

	var segs []RawSegment
	for _, u := range res.Results.Utterances {
		segs = append(segs, RawSegment{
			Start: u.Start,
			End:   u.End,
			Text:  u.Transcript,
		})
	}
	if len(segs) > 0 {
		return segs, nil
	}

	// No utterance timing available; fall back to the channel transcript as
	// a single segment spanning the chunk.
	for _, ch := range res.Results.Channels {
		for _, alt := range ch.Alternatives {
			if alt.Transcript != "" {
				return []RawSegment{{Start: 0, End: chunkSeconds, Text: alt.Transcript}}, nil
			}
		}
	}
	return nil, nil
}

// Close is a no-op; the REST client holds no persistent connection.
func (e *DeepgramEngine) Close() error { return nil }
