package rabbitmq

import (
	"errors"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

var ErrNotConnected = errors.New("rabbitmq connection is not open")

//Connection is the connection created
type Connection struct {
	sync.Mutex
	name    string
	domain  string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	ApiErr  chan error
	closed  bool
}

var (
	poolMutex      sync.Mutex
	connectionPool = make(map[string]*Connection)
)

//NewConnection returns the new connection object
func NewConnection(name, domain string, queues []string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		domain: domain,
		Queues: queues,
		ApiErr: make(chan error, 1),
	}
	connectionPool[name] = c
	return c
}

//GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	return connectionPool[name]
}

// Connect dials the broker and opens a channel. The lock is only taken to
// swap the new connection in.
func (c *Connection) Connect() error {
	conn, err := amqp.Dial(c.domain)
	if err != nil {
		return fmt.Errorf("Error in creating rabbitmq connection with %s : %s", c.domain, err.Error())
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("Channel: %s", err)
	}

	c.Lock()
	previous := c.Conn
	c.Conn = conn
	c.Channel = channel
	c.closed = false
	c.Unlock()

	go func() {
		<-conn.NotifyClose(make(chan *amqp.Error)) //Listen to NotifyClose
		c.Lock()
		current := c.Conn == conn
		if current {
			c.closed = true
		}
		c.Unlock()
		if !current {
			return
		}
		select {
		case c.ApiErr <- errors.New("Api detect Connection Closed"):
		default:
		}
	}()

	if previous != nil {
		previous.Close()
	}
	return nil
}

// channel returns the open channel, or nil while disconnected.
func (c *Connection) channel() *amqp.Channel {
	c.Lock()
	defer c.Unlock()
	if c.Conn == nil || c.closed {
		return nil
	}
	return c.Channel
}

func (c *Connection) BindQueue() error {
	channel := c.channel()
	if channel == nil {
		return ErrNotConnected
	}
	for _, q := range c.Queues {
		if _, err := channel.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("error in declaring the queue %s", err)
		}
	}
	return nil
}

//Reconnect reconnects the connection
func (c *Connection) Reconnect() error {
	if err := c.Connect(); err != nil {
		return err
	}
	if err := c.BindQueue(); err != nil {
		return err
	}
	return nil
}

// Publish sends a persistent JSON message to queue through the default exchange.
// It returns ErrNotConnected right away while a reconnect is in progress.
func (c *Connection) Publish(queue string, body []byte) error {
	channel := c.channel()
	if channel == nil {
		return ErrNotConnected
	}
	return channel.Publish(
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}

// Connected reports whether the last Connect succeeded and has not been closed since.
func (c *Connection) Connected() bool {
	c.Lock()
	defer c.Unlock()
	return c.Conn != nil && !c.closed
}

// Inspect reports the state of every bound queue.
func (c *Connection) Inspect() (map[string]amqp.Queue, error) {
	channel := c.channel()
	if channel == nil {
		return nil, ErrNotConnected
	}
	queues := make(map[string]amqp.Queue, len(c.Queues))
	for _, q := range c.Queues {
		queue, err := channel.QueueInspect(q)
		if err != nil {
			return queues, fmt.Errorf("Queue[%s] error: %s", q, err.Error())
		}
		queues[q] = queue
	}
	return queues, nil
}

func (c *Connection) Close() error {
	c.Lock()
	conn := c.Conn
	c.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// RemoveConnection closes the named connection and drops it from the pool.
func RemoveConnection(name string) error {
	poolMutex.Lock()
	c, ok := connectionPool[name]
	delete(connectionPool, name)
	poolMutex.Unlock()
	if !ok {
		return nil
	}
	return c.Close()
}
