// Package statsd wraps the metric emission the duel server needs. It hides
// the datadog dependency so a future backend swap only touches this file.
// Until Init succeeds the client is a no-op, which keeps tests and local
// runs metric-free without any conditionals at call sites.
package statsd

import (
	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		ddstatsd.WithNamespace("skyduel"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}
	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "failed to create statsd client")
	}
	client = newClient
	return nil
}

// EmitCorrection counts one reconciled state sample, and the correction if
// the sample needed one.
func EmitCorrection(room string, corrected bool) {
	tags := []string{"room:" + room}
	if err := Client().Incr("state.samples", tags, 1); err != nil {
		log.Warn().Msgf("failed to emit sample stat: %v", err)
	}
	if !corrected {
		return
	}
	if err := Client().Incr("state.corrected", tags, 1); err != nil {
		log.Warn().Msgf("failed to emit correction stat: %v", err)
	}
}

// EmitReject counts one rejected send, tagged by reject reason.
func EmitReject(reason string) {
	if err := Client().Incr("send.rejected", []string{"reason:" + reason}, 1); err != nil {
		log.Warn().Msgf("failed to emit reject stat: %v", err)
	}
}
