package transport

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/wokuno/ferox/internal/command"
	"github.com/wokuno/ferox/internal/snapshot"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans a stream of snapshots out to every connected browser and
// collects their submitted commands into a shared queue. Unlike the
// teacher's server (explicitly single-client-only), Hub generalizes to
// multiple concurrent viewers, the extension the teacher's root_view TODOs
// called out as the natural next step.
type Hub struct {
	router *mux.Router
	queue  *command.Queue
	width  int
	height int

	mu      sync.Mutex
	clients map[uuid.UUID]chan wireSnapshot

	latestMu sync.RWMutex
	latest   wireSnapshot
	hasLatest bool
}

// NewHub builds a Hub that receives commands into queue and serves the
// websocket endpoint alongside a minimal bootstrap index page.
func NewHub(queue *command.Queue, width, height int) *Hub {
	h := &Hub{
		router:  mux.NewRouter(),
		queue:   queue,
		width:   width,
		height:  height,
		clients: make(map[uuid.UUID]chan wireSnapshot),
	}
	h.router.HandleFunc("/", h.serveIndex).Methods(http.MethodGet)
	h.router.HandleFunc("/ws", h.serveWebsocket)
	h.router.HandleFunc("/snapshot", h.serveSnapshot).Methods(http.MethodGet)
	h.router.HandleFunc("/command", h.serveCommand).Methods(http.MethodPost)
	h.router.HandleFunc("/healthz", h.serveHealthz).Methods(http.MethodGet)
	return h
}

func (h *Hub) Handler() http.Handler { return h.router }

// Publish fans out one tick's snapshot to every connected websocket client
// and caches it for plain-HTTP polling via /snapshot. Clients that are not
// keeping up (their channel is full) are skipped for this tick rather than
// blocking the whole broadcast — snapshots are idempotent state, not
// events, so a dropped frame is recovered by the next one.
func (h *Hub) Publish(snap snapshot.Snapshot) {
	wire := toWire(snap)

	h.latestMu.Lock()
	h.latest = wire
	h.hasLatest = true
	h.latestMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- wire:
		default:
		}
	}
}

// serveSnapshot answers a plain HTTP GET with the most recently published
// snapshot, for polling clients that don't want a websocket.
func (h *Hub) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	h.latestMu.RLock()
	snap, ok := h.latest, h.hasLatest
	h.latestMu.RUnlock()

	if !ok {
		http.Error(w, "no snapshot published yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

// serveCommand accepts a single JSON command over plain HTTP, for callers
// that don't want to hold a websocket open just to submit one control
// command (e.g. a CLI, a curl script).
func (h *Hub) serveCommand(w http.ResponseWriter, r *http.Request) {
	var payload wireCommand
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd, err := decodeCommand(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := cmd.Validate(h.width, h.height); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.queue.Push(cmd)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Hub) register() (uuid.UUID, chan wireSnapshot) {
	id := uuid.New()
	ch := make(chan wireSnapshot, 4)
	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) unregister(id uuid.UUID) {
	h.mu.Lock()
	if ch, ok := h.clients[id]; ok {
		close(ch)
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

func (h *Hub) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id, updates := h.register()
	defer h.unregister(id)

	c := newClient(id, ws, r.Context(), updates, h.queue, h.width, h.height)
	if err := c.Sync(); err != nil {
		log.Printf("transport: client %s closed: %v", id, err)
	}
}

func (h *Hub) serveHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><link rel="icon" href="data:,"></head>
<body>
<pre id="log"></pre>
<script>
  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = (evt) => {
    const snap = JSON.parse(evt.data);
    document.getElementById("log").textContent = "tick " + snap.tick + ", colonies " + snap.colonies.length;
  };
</script>
</body>
</html>
`))

func (h *Hub) serveIndex(w http.ResponseWriter, r *http.Request) {
	if err := indexTemplate.Execute(w, nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Serve blocks serving http.Handler until ctx is done or ListenAndServe
// returns a non-shutdown error.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
