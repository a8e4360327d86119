package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"

	"github.com/alexk15655-dotcom/MCGuide/internal/catalog"
	"github.com/alexk15655-dotcom/MCGuide/internal/navigator"
	"github.com/alexk15655-dotcom/MCGuide/internal/resolver"
)

// liveOp is a frame sent by the page.
type liveOp struct {
	Op     string           `json:"op"`
	Index  int              `json:"index"`
	Lang   string           `json:"lang"`
	Menu   navigator.Menu   `json:"menu"`
	Region navigator.Region `json:"region"`
}

type liveConfig struct {
	labels         *resolver.Labels
	transitionLock time.Duration
	idleTimeout    time.Duration
	scheduler      navigator.Scheduler
}

// handleLive mounts a navigator for the lifetime of a websocket
// connection. Every state change is answered with a view frame; side
// effects of the navigator arrive through the broker.
func handleLive(broker *Broker, cfg liveConfig, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := bundleFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		sessionID := middleware.GetReqID(r.Context())
		if sessionID == "" {
			sessionID = fmt.Sprintf("%p", conn)
		}
		log := logger.With("brand", b.Slug, "session", sessionID)

		out := broker.Subscribe(sessionID)
		defer broker.Unsubscribe(sessionID, out)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		outbox := sessionOutbox{broker: broker, id: sessionID}
		opts := []navigator.Option{
			navigator.WithLabels(cfg.labels),
			navigator.WithLogger(log),
		}
		if cfg.transitionLock > 0 {
			opts = append(opts, navigator.WithLockDuration(cfg.transitionLock))
		}
		if cfg.scheduler != nil {
			opts = append(opts, navigator.WithScheduler(cfg.scheduler))
		}

		// The lock can clear on a timer goroutine; views is held across
		// snapshot and publish so frames leave in state order.
		var views sync.Mutex
		var nav *navigator.Navigator
		push := func() {
			views.Lock()
			defer views.Unlock()
			publishView(broker, sessionID, b, nav, log)
		}
		opts = append(opts, navigator.WithUnlockHook(push))

		nav = navigator.Mount(b.Guide, b.Brand, navigator.Environment{
			Address:    &url.URL{Path: "/" + b.Slug, RawQuery: r.URL.RawQuery},
			Preference: r.Header.Get("Accept-Language"),
			History:    outbox,
			Style:      outbox,
		}, opts...)
		defer nav.Close()

		push()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-out.Ready():
					frames, err := out.Take()
					if err != nil {
						return err
					}
					for _, data := range frames {
						if err := conn.Write(gctx, websocket.MessageText, data); err != nil {
							return err
						}
					}
				}
			}
		})
		g.Go(func() error {
			defer cancel()
			for {
				readCtx, readCancel := context.WithTimeout(gctx, cfg.idleTimeout)
				typ, msg, err := conn.Read(readCtx)
				readCancel()
				if err != nil {
					return err
				}
				if typ != websocket.MessageText {
					broker.Publish(sessionID, LiveEvent{Type: eventError, Error: "expected a text frame"})
					continue
				}

				var op liveOp
				if err := json.Unmarshal(msg, &op); err != nil {
					log.Warn("malformed live frame", "error", err)
					broker.Publish(sessionID, LiveEvent{Type: eventError, Error: "malformed frame"})
					continue
				}
				if err := apply(nav, op); err != nil {
					log.Warn("rejected live op", "op", op.Op, "error", err)
					broker.Publish(sessionID, LiveEvent{Type: eventError, Error: err.Error()})
					continue
				}
				push()
			}
		})

		err = g.Wait()
		switch {
		case err == nil,
			errors.Is(err, context.Canceled),
			websocket.CloseStatus(err) == websocket.StatusNormalClosure,
			websocket.CloseStatus(err) == websocket.StatusGoingAway:
			log.Debug("live session ended")
		case errors.Is(err, errSubscriberBehind):
			log.Warn("live session dropped", "error", err)
		default:
			log.Debug("live session ended", "error", err)
		}
	}
}

var errUnknownOp = errors.New("unknown op")

// apply runs one client operation against the navigator. Operations the
// navigator declines (a locked transition, a boundary step) are not
// errors: the view that follows simply shows nothing changed.
func apply(nav *navigator.Navigator, op liveOp) error {
	switch op.Op {
	case "goto":
		nav.GoToStep(op.Index)
	case "next":
		nav.NextStep()
	case "previous":
		nav.PreviousStep()
	case "language":
		if !nav.SetLanguage(op.Lang) {
			return fmt.Errorf("language %q is not offered", op.Lang)
		}
	case "toggle":
		if !op.Menu.Valid() {
			return fmt.Errorf("unknown menu %q", op.Menu)
		}
		nav.ToggleMenu(op.Menu)
	case "close":
		nav.CloseMenus()
	case "pointer":
		nav.PointerDown(op.Region)
	default:
		return fmt.Errorf("%w %q", errUnknownOp, op.Op)
	}
	return nil
}

func publishView(broker *Broker, sessionID string, b *catalog.Bundle, nav *navigator.Navigator, log *slog.Logger) {
	v := nav.View()
	html, err := renderFragment("guide", newGuideData(b.Slug, b.Guide, v))
	if err != nil {
		log.Error("rendering live view", "error", err)
	}
	broker.Publish(sessionID, LiveEvent{Type: eventView, View: &v, HTML: html})
}
