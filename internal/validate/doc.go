// Package validate implements the health check catalogue that is run against
// a PravdaPlus deployment through its local tunnels. Checks are independent,
// non-mutating, and execute strictly in declaration order: connectivity
// before content, content before cross-service. The engine supports two
// execution policies, fail-fast for smoke tests and aggregate for the full
// report.
package validate
