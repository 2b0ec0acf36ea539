// Package metrics defines the counters and latency hooks emitted by layerx402.
package metrics

import "time"

// Event names
const (
	EventProofRejected   = "proof_rejected"
	EventAddressRejected = "address_rejected"
	EventRequestPrepared = "request_prepared"
	EventRequestRejected = "request_rejected"

	OperationPrepareRequest = "prepare_request"
)

// NetworkUnsupported is the network label recorded for tags that have no
// address rule, so arbitrary caller input never becomes a label value.
const NetworkUnsupported = "unsupported"

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// NoopRecorder discards everything. It is the default when no recorder is configured.
type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
