// Package tunnel manages the local port-forwards through which the
// validation checks reach the deployed services. A tunnel is a managed
// resource with explicit acquire and release operations; acquiring a port
// first evicts whatever process currently owns it, so re-acquisition always
// yields exactly one live forwarding process per port.
package tunnel
