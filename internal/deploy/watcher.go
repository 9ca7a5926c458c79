package deploy

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"stagehand/internal/logging"
	"stagehand/internal/services"
)

// Watcher listens for udev netlink events and reports freshly inserted
// USB block partitions.
type Watcher struct {
	logger  *slog.Logger
	handler func(ctx context.Context, device string)

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewWatcher creates a watcher that invokes handler with the device node
// of each inserted USB partition.
func NewWatcher(logger *slog.Logger, handler func(ctx context.Context, device string)) *Watcher {
	return &Watcher{
		logger:  logging.NewComponentLogger(logger, "usb-watcher"),
		handler: handler,
	}
}

// Start begins listening for udev netlink events.
func (w *Watcher) Start(ctx context.Context) error {
	if w == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return services.Wrap(services.ErrTransient, "deploy", "watch", "connect netlink socket", err)
	}

	w.conn = conn
	w.quit = make(chan struct{})
	w.running = true

	quit := w.quit
	go w.monitorLoop(ctx, quit)

	w.logger.Info("usb watcher started")
	return nil
}

// Stop shuts down the watcher.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	if w.quit != nil {
		close(w.quit)
		w.quit = nil
	}
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
	w.running = false

	w.logger.Info("usb watcher stopped")
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, usbPartitionMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			w.handleEvent(ctx, uevent)
		case err := <-errs:
			w.logger.Warn("usb watcher error", logging.Error(err))
		}
	}
}

// usbPartitionMatcher matches ACTION=add events for USB-attached block
// partitions.
func usbPartitionMatcher() netlink.Matcher {
	action := "add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"DEVTYPE":   "partition",
			"ID_BUS":    "usb",
		},
	})
	return rules
}

func (w *Watcher) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	device := deviceName(uevent)
	if device == "" {
		w.logger.Debug("ignoring event without device name",
			logging.String("action", string(uevent.Action)),
			logging.String("kobj", uevent.KObj),
		)
		return
	}

	w.logger.Info("usb partition detected", logging.String("device", device))
	if w.handler != nil {
		w.handler(ctx, device)
	}
}

func deviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	if len(parts) == 0 {
		return ""
	}
	return "/dev/" + parts[len(parts)-1]
}

// WaitForDevice blocks until a USB partition is inserted or the timeout
// elapses, and returns the device node.
func WaitForDevice(ctx context.Context, logger *slog.Logger, timeout time.Duration) (string, error) {
	found := make(chan string, 1)
	watcher := NewWatcher(logger, func(_ context.Context, device string) {
		select {
		case found <- device:
		default:
		}
	})
	if err := watcher.Start(ctx); err != nil {
		return "", err
	}
	defer watcher.Stop()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case device := <-found:
		return device, nil
	case <-timer.C:
		return "", services.Wrap(services.ErrTimeout, "deploy", "watch", "no usb stick inserted", nil)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
