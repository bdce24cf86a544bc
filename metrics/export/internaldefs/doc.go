// Package internaldefs holds metric naming and bucket layout shared by the
// Prometheus and OTel exporters. It carries no state and performs no I/O.
package internaldefs
