// Package export ships query output off the machine: poll samples are
// published to a Nostr relay as replaceable app-data events and the metric
// catalog is stored in Dgraph.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

// Relay is the subset of *nostr.Relay the publisher needs.
type Relay interface {
	QuerySync(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
	Publish(ctx context.Context, event nostr.Event) error
	Close() error
}

// SampleEventKind is the parameterized replaceable app-data kind. With the
// session id in the d tag each session keeps only its newest sample.
const SampleEventKind = 30078

// Sample is one poll result keyed by column label.
type Sample struct {
	SessionID string             `json:"session"`
	Pid       uint32             `json:"pid"`
	Process   string             `json:"process,omitempty"`
	Time      time.Time          `json:"time"`
	Values    map[string]float64 `json:"values"`
	Labels    map[string]string  `json:"labels,omitempty"`
}

type RelayPublisher struct {
	relay     Relay
	keyPair   KeyPair
	sessionID string
}

func NewRelayPublisher(relay Relay, keyPair KeyPair, sessionID string) *RelayPublisher {
	return &RelayPublisher{
		relay:     relay,
		keyPair:   keyPair,
		sessionID: sessionID,
	}
}

// ConnectRelay dials url.
func ConnectRelay(ctx context.Context, url string) (Relay, error) {
	r, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to relay %s: %w", url, err)
	}
	return r, nil
}

// Event builds and signs the event carrying sample.
func (p *RelayPublisher) Event(sample Sample) (nostr.Event, error) {
	sample.SessionID = p.sessionID
	content, err := json.Marshal(sample)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("failed to encode sample: %w", err)
	}

	event := nostr.Event{
		PubKey:    p.keyPair.PublicKeyHex,
		CreatedAt: nostr.Timestamp(sample.Time.Unix()),
		Kind:      SampleEventKind,
		Tags: nostr.Tags{
			{"d", p.sessionID},
			{"pid", strconv.FormatUint(uint64(sample.Pid), 10)},
		},
		Content: string(content),
	}
	if sample.Process != "" {
		event.Tags = append(event.Tags, nostr.Tag{"process", sample.Process})
	}

	if err := event.Sign(p.keyPair.PrivateKeyHex); err != nil {
		return nostr.Event{}, fmt.Errorf("failed to sign sample event: %w", err)
	}
	return event, nil
}

func (p *RelayPublisher) Publish(ctx context.Context, sample Sample) error {
	event, err := p.Event(sample)
	if err != nil {
		return err
	}
	if err := p.relay.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish sample event: %w", err)
	}
	return nil
}

// Latest fetches the newest sample this session published, or nil if the
// relay has none.
func (p *RelayPublisher) Latest(ctx context.Context) (*Sample, error) {
	filter := nostr.Filter{
		Kinds:   []int{SampleEventKind},
		Authors: []string{p.keyPair.PublicKeyHex},
		Tags:    nostr.TagMap{"d": []string{p.sessionID}},
		Limit:   1,
	}

	events, err := p.relay.QuerySync(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query sample events: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	event := events[0]
	if ok, err := event.CheckSignature(); err != nil || !ok {
		return nil, fmt.Errorf("sample event %s has an invalid signature", event.ID)
	}
	var sample Sample
	if err := json.Unmarshal([]byte(event.Content), &sample); err != nil {
		return nil, fmt.Errorf("failed to decode sample: %w", err)
	}
	return &sample, nil
}

func (p *RelayPublisher) Close() error {
	return p.relay.Close()
}
