package clientgate

// Transport dispatches a click payload toward the backend. Dispatch is
// fire-and-forget: acceptance by the transport counts as success, delivery
// is never awaited.
type Transport interface {
	Send(path string, payload []byte) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(path string, payload []byte) error

func (f TransportFunc) Send(path string, payload []byte) error {
	return f(path, payload)
}

// sendBestEffort tries the beacon-style primary transport first and falls
// back to the ordinary one when construction or dispatch fails. The send is
// treated optimistically as done either way.
func sendBestEffort(primary, fallback Transport, path string, payload []byte) {
	if primary != nil {
		if err := primary.Send(path, payload); err == nil {
			return
		}
	}
	if fallback != nil {
		_ = fallback.Send(path, payload)
	}
}
