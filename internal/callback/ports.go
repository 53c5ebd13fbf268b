package callback

import (
	"net"
	"strconv"
)

// PortStatus reports whether a single port of the callback range can be bound.
type PortStatus struct {
	Port      int
	Available bool
	Reason    string
}

// ProbePorts tries to bind every port of cfg's range and immediately releases
// it again. The result is a snapshot; another process may take a port afterwards.
func ProbePorts(cfg Config) ([]PortStatus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	statuses := make([]PortStatus, 0, cfg.PortEnd-cfg.PortStart+1)
	for port := cfg.PortStart; port <= cfg.PortEnd; port++ {
		status := PortStatus{Port: port}
		ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(port)))
		if err != nil {
			status.Reason = err.Error()
		} else {
			status.Available = true
			_ = ln.Close()
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
