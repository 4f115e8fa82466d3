package tunnel

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hijacksecurity/PravdaPlus/internal/config"
	"github.com/hijacksecurity/PravdaPlus/pkg/logging"
)

const maxReclaimAttempts = 3

// settleInterval is how long to wait after killing a port owner for the OS
// to release the port. listenWaitDeadline bounds the post-spawn probe for a
// listening socket. Both are mockable for tests.
var (
	settleInterval     = 1 * time.Second
	listenWaitDeadline = 5 * time.Second
)

// ResourceConflict indicates a local port could not be reclaimed from its
// current owner within the bounded number of attempts.
type ResourceConflict struct {
	Port     int
	Attempts int
}

func (e *ResourceConflict) Error() string {
	return fmt.Sprintf("local port %d could not be reclaimed after %d attempts", e.Port, e.Attempts)
}

// Endpoint is a named, reachable service address. Immutable once resolved.
type Endpoint struct {
	Role string
	URL  string
}

// Binding is a live tunnel from a local port to a service inside the
// cluster, owning the forwarding process behind it.
type Binding struct {
	Name       string
	Service    string
	Namespace  string
	LocalPort  int
	RemotePort int

	cmd *exec.Cmd
}

// Endpoint returns the local address the tunnel serves.
func (b *Binding) Endpoint() Endpoint {
	return Endpoint{
		Role: b.Name,
		URL:  fmt.Sprintf("http://localhost:%d", b.LocalPort),
	}
}

// Manager owns all tunnel bindings of one invocation. At most one binding
// exists per local port; acquiring a port again replaces the previous owner
// rather than adding a second one. Bindings are not persisted beyond the
// process lifetime.
type Manager struct {
	kubeContext string
	bindings    map[int]*Binding
}

func NewManager(kubeContext string) *Manager {
	return &Manager{
		kubeContext: kubeContext,
		bindings:    make(map[int]*Binding),
	}
}

// Mockable seams for the process-level operations.
var (
	portOwnerPIDs    = defaultPortOwnerPIDs
	terminateProcess = defaultTerminateProcess
	startTunnel      = defaultStartTunnel
)

// Acquire establishes a tunnel for the given definition. Any process
// currently bound to the local port is terminated first; re-acquisition is
// idempotent and yields exactly one live forwarding process per port.
func (m *Manager) Acquire(def config.TunnelDefinition, namespace string) (*Binding, error) {
	subsystem := "Tunnel-" + def.Name

	if existing, ok := m.bindings[def.LocalPort]; ok {
		logging.Info(subsystem, "Replacing existing tunnel on port %d", def.LocalPort)
		if err := m.Release(existing); err != nil {
			logging.Warn(subsystem, "Failed to release previous tunnel on port %d: %v", def.LocalPort, err)
		}
	}

	if err := reclaimPort(def.LocalPort, subsystem); err != nil {
		return nil, err
	}

	cmd, err := startTunnel(m.kubeContext, namespace, def.Service, def.LocalPort, def.RemotePort, subsystem)
	if err != nil {
		return nil, fmt.Errorf("failed to start tunnel for %s: %w", def.Name, err)
	}

	binding := &Binding{
		Name:       def.Name,
		Service:    def.Service,
		Namespace:  namespace,
		LocalPort:  def.LocalPort,
		RemotePort: def.RemotePort,
		cmd:        cmd,
	}
	m.bindings[def.LocalPort] = binding

	// Tunneling to a not-yet-ready pod is a foreseeable failure mode that
	// later validation covers, so a tunnel that never starts listening is
	// only worth a warning here.
	if !waitUntilListening(def.LocalPort, listenWaitDeadline) {
		logging.Warn(subsystem, "Tunnel on port %d not accepting connections yet", def.LocalPort)
	}

	logging.Info(subsystem, "Tunnel established: localhost:%d -> %s/%s:%d", def.LocalPort, namespace, def.Service, def.RemotePort)
	return binding, nil
}

// Release terminates the forwarding process of a binding and forgets it.
// Releasing an already-dead binding is not an error.
func (m *Manager) Release(b *Binding) error {
	delete(m.bindings, b.LocalPort)
	if b.cmd == nil || b.cmd.Process == nil {
		return nil
	}
	if err := b.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Fall back to a hard kill; ESRCH-style errors mean it is already gone.
		if killErr := b.cmd.Process.Kill(); killErr != nil {
			return nil
		}
	}
	return nil
}

// ReleaseAll tears down every binding the manager owns.
func (m *Manager) ReleaseAll() {
	for _, b := range m.bindings {
		if err := m.Release(b); err != nil {
			logging.Warn("Tunnel-"+b.Name, "Failed to release tunnel on port %d: %v", b.LocalPort, err)
		}
	}
}

// Endpoints returns the endpoints of all live bindings.
func (m *Manager) Endpoints() []Endpoint {
	endpoints := make([]Endpoint, 0, len(m.bindings))
	for _, b := range m.bindings {
		endpoints = append(endpoints, b.Endpoint())
	}
	return endpoints
}

// reclaimPort terminates whatever currently owns the port, then waits a
// settle interval for the OS to release it. This is mutual exclusion by
// destruction, not a lock: a narrow race window remains between termination
// and re-binding, which is acceptable for an operator-invoked tool.
func reclaimPort(port int, subsystem string) error {
	for attempt := 1; attempt <= maxReclaimAttempts; attempt++ {
		pids, err := portOwnerPIDs(port)
		if err != nil {
			return fmt.Errorf("failed to inspect port %d: %w", port, err)
		}
		if len(pids) == 0 {
			return nil
		}

		logging.Info(subsystem, "Port %d owned by %v, terminating (attempt %d/%d)", port, pids, attempt, maxReclaimAttempts)
		for _, pid := range pids {
			if err := terminateProcess(pid); err != nil {
				logging.Debug(subsystem, "Terminating pid %d: %v", pid, err)
			}
		}
		time.Sleep(settleInterval)
	}

	pids, err := portOwnerPIDs(port)
	if err == nil && len(pids) == 0 {
		return nil
	}
	return &ResourceConflict{Port: port, Attempts: maxReclaimAttempts}
}

// defaultPortOwnerPIDs lists the PIDs bound to a local TCP port via lsof.
// An empty result is success: nothing owns the port.
func defaultPortOwnerPIDs(port int) ([]int, error) {
	cmd := exec.Command("lsof", "-ti", fmt.Sprintf("tcp:%d", port))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		// lsof exits 1 when no process matches; that is "port free".
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("lsof failed: %w", err)
	}

	var pids []int
	for _, line := range strings.Fields(stdout.String()) {
		pid, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// defaultTerminateProcess sends SIGTERM to a pid, tolerating "no such
// process" as success.
func defaultTerminateProcess(pid int) error {
	err := syscall.Kill(pid, syscall.SIGTERM)
	if err == syscall.ESRCH {
		return nil
	}
	return err
}

// defaultStartTunnel spawns a kubectl port-forward process for the service.
func defaultStartTunnel(kubeContext, namespace, service string, localPort, remotePort int, subsystem string) (*exec.Cmd, error) {
	args := []string{"port-forward"}
	if kubeContext != "" {
		args = append(args, "--context", kubeContext)
	}
	if namespace != "" {
		args = append(args, "--namespace", namespace)
	}
	args = append(args,
		"service/"+service,
		fmt.Sprintf("%d:%d", localPort, remotePort),
	)

	cmd := exec.Command("kubectl", args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	go func() {
		scanner := bufio.NewScanner(stdoutPipe)
		for scanner.Scan() {
			logging.Debug(subsystem, "%s", scanner.Text())
		}
	}()
	go func() {
		scanner := bufio.NewScanner(stderrPipe)
		for scanner.Scan() {
			logging.Warn(subsystem, "%s", scanner.Text())
		}
	}()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start kubectl port-forward: %w", err)
	}
	return cmd, nil
}

// waitUntilListening polls the local port until it accepts a TCP connection
// or the deadline passes.
func waitUntilListening(port int, deadline time.Duration) bool {
	addr := fmt.Sprintf("localhost:%d", port)
	end := time.Now().Add(deadline)
	for time.Now().Before(end) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return true
		}
		time.Sleep(250 * time.Millisecond)
	}
	return false
}
