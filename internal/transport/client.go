package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/wokuno/ferox/internal/command"
)

const (
	pingResolution = 200 * time.Millisecond
	pongWait       = pingResolution * 4
	pubResolution  = 100 * time.Millisecond
)

// client publishes snapshots to one connected browser and feeds its
// submitted commands into queue, mirroring the read/ping/publish fan-out of
// the teacher's fastview client but specialized to a single snapshot type
// and a bidirectional command channel rather than a generic read-only one.
type client struct {
	id      uuid.UUID
	updates <-chan wireSnapshot
	queue   *command.Queue
	width   int
	height  int
	ws      *websock
	rootCtx context.Context
}

func newClient(id uuid.UUID, ws *websocket.Conn, rootCtx context.Context, updates <-chan wireSnapshot, queue *command.Queue, width, height int) *client {
	return &client{
		id:      id,
		updates: updates,
		queue:   queue,
		width:   width,
		height:  height,
		ws:      newWebsock(ws),
		rootCtx: rootCtx,
	}
}

// Sync runs the client until disconnect, context cancellation, or an
// unrecoverable socket error.
func (c *client) Sync() error {
	group, groupCtx := errgroup.WithContext(c.rootCtx)

	group.Go(func() error { return c.readMessages(groupCtx) })
	group.Go(func() error { return c.pingPong(groupCtx) })
	group.Go(func() error { return c.publish(groupCtx) })

	err := group.Wait()
	c.ws.Close()
	return err
}

func (c *client) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	c.ws.Conn().SetPongHandler(func(_ string) error {
		select {
		case pong <- struct{}{}:
		case <-ctx.Done():
		}
		return nil
	})

	ticks := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			if time.Since(lastPong) > pongWait {
				return fmt.Errorf("transport: client %s pong deadline exceeded", c.id)
			}
			if err := c.ping(ctx); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (c *client) ping(ctx context.Context) error {
	return c.ws.Write(ctx, func(ws *websocket.Conn) error {
		if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil && isUnexpectedClose(err) {
			return fmt.Errorf("transport: ping: %w", err)
		}
		return nil
	})
}

// readMessages decodes each inbound JSON command and pushes it onto the
// shared queue. A message that decodes as JSON but names an unknown command
// type or fails Validate is dropped and the connection stays open; a read
// error or a message that is not valid JSON ends the loop with that error,
// which closes the connection.
func (c *client) readMessages(ctx context.Context) error {
	for {
		var payload wireCommand
		err := c.ws.Read(ctx, func(ws *websocket.Conn) error {
			return ws.ReadJSON(&payload)
		})
		if err != nil {
			if isUnexpectedClose(err) {
				return fmt.Errorf("transport: read: %w", err)
			}
			return err
		}

		cmd, decodeErr := decodeCommand(payload)
		if decodeErr != nil {
			continue
		}
		if cmd.Validate(c.width, c.height) != nil {
			continue
		}
		c.queue.Push(cmd)
	}
}

func (c *client) publish(ctx context.Context) error {
	var lastSync time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-c.updates:
			if !ok {
				return nil
			}
			if time.Since(lastSync) < pubResolution {
				continue
			}
			lastSync = time.Now()
			err := c.ws.Write(ctx, func(ws *websocket.Conn) error {
				if err := ws.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
					return fmt.Errorf("transport: set write deadline: %w", err)
				}
				if err := ws.WriteJSON(snap); err != nil && isUnexpectedClose(err) {
					return fmt.Errorf("transport: publish: %w", err)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
}
