package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/wokuno/ferox/internal/command"
	"github.com/wokuno/ferox/internal/snapshot"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHubBroadcastsSnapshotToConnectedClient(t *testing.T) {
	Convey("Given a hub with one connected websocket client", t, func() {
		queue := command.NewQueue()
		hub := NewHub(queue, 10, 10)
		srv := httptest.NewServer(hub.Handler())
		defer srv.Close()

		conn := dialHub(t, srv)
		defer conn.Close()
		time.Sleep(20 * time.Millisecond) // allow registration to land

		hub.Publish(snapshot.Snapshot{Width: 10, Height: 10, Tick: 7})

		Convey("The client receives the published tick", func() {
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			var got wireSnapshot
			err := conn.ReadJSON(&got)
			So(err, ShouldBeNil)
			So(got.Tick, ShouldEqual, uint64(7))
			So(got.Width, ShouldEqual, 10)
		})
	})
}

func TestHubFeedsSubmittedCommandsIntoQueue(t *testing.T) {
	Convey("Given a hub with one connected websocket client", t, func() {
		queue := command.NewQueue()
		hub := NewHub(queue, 10, 10)
		srv := httptest.NewServer(hub.Handler())
		defer srv.Close()

		conn := dialHub(t, srv)
		defer conn.Close()
		time.Sleep(20 * time.Millisecond)

		err := conn.WriteJSON(wireCommand{Type: "pause"})
		So(err, ShouldBeNil)

		Convey("The command lands on the shared queue", func() {
			deadline := time.Now().Add(2 * time.Second)
			for queue.Len() == 0 && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}
			drained := queue.DrainAll()
			So(len(drained), ShouldEqual, 1)
			So(drained[0].Type, ShouldEqual, command.Pause)
		})
	})
}

func TestHubServesLatestSnapshotOverPlainHTTP(t *testing.T) {
	Convey("Given a hub that has not published yet", t, func() {
		hub := NewHub(command.NewQueue(), 10, 10)
		srv := httptest.NewServer(hub.Handler())
		defer srv.Close()

		Convey("GET /snapshot reports unavailable", func() {
			resp, err := http.Get(srv.URL + "/snapshot")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("after a Publish, GET /snapshot returns it", func() {
			hub.Publish(snapshot.Snapshot{Width: 10, Height: 10, Tick: 3})

			resp, err := http.Get(srv.URL + "/snapshot")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var got wireSnapshot
			So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
			So(got.Tick, ShouldEqual, uint64(3))
		})
	})
}

func TestHubAcceptsCommandOverPlainHTTP(t *testing.T) {
	Convey("Given a hub and a pause command posted as JSON", t, func() {
		queue := command.NewQueue()
		hub := NewHub(queue, 10, 10)
		srv := httptest.NewServer(hub.Handler())
		defer srv.Close()

		body, _ := json.Marshal(wireCommand{Type: "pause"})
		resp, err := http.Post(srv.URL+"/command", "application/json", bytes.NewReader(body))

		Convey("It is accepted and lands on the queue", func() {
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)

			drained := queue.DrainAll()
			So(len(drained), ShouldEqual, 1)
			So(drained[0].Type, ShouldEqual, command.Pause)
		})
	})

	Convey("Given a malformed command posted as JSON", t, func() {
		queue := command.NewQueue()
		hub := NewHub(queue, 10, 10)
		srv := httptest.NewServer(hub.Handler())
		defer srv.Close()

		body, _ := json.Marshal(wireCommand{Type: "spawnColony", X: -1, Y: 0, Name: "x"})
		resp, err := http.Post(srv.URL+"/command", "application/json", bytes.NewReader(body))

		Convey("It is rejected and never reaches the queue", func() {
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(queue.Len(), ShouldEqual, 0)
		})
	})
}

func TestHubUnregistersClientOnDisconnect(t *testing.T) {
	Convey("Given a hub with one connected client that then disconnects", t, func() {
		queue := command.NewQueue()
		hub := NewHub(queue, 10, 10)
		srv := httptest.NewServer(hub.Handler())
		defer srv.Close()

		conn := dialHub(t, srv)
		conn.Close()
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			hub.mu.Lock()
			remaining := len(hub.clients)
			hub.mu.Unlock()
			if remaining == 0 {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}

		Convey("Publishing afterward touches no remaining registered client", func() {
			So(func() { hub.Publish(snapshot.Snapshot{Tick: 1}) }, ShouldNotPanic)
			hub.mu.Lock()
			n := len(hub.clients)
			hub.mu.Unlock()
			So(n, ShouldEqual, 0)
		})
	})
}
