package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
	"github.com/iqbalShafiq/word-battle-game/internal/testutil"
)

// fakeConn records sent events for assertions
type fakeConn struct {
	sent    []protocol.Event
	sendErr error
	closed  bool
}

func (c *fakeConn) Send(event protocol.Event) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, event)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry(testutil.NopLogger())
}

func (s *RegistrySuite) TestRegisterAndSendTo() {
	conn := &fakeConn{}
	s.registry.Register("p1", conn)

	s.registry.SendTo("p1", protocol.NewQueueJoined(1))

	s.Require().Len(conn.sent, 1)
	s.Equal(protocol.EventQueueJoined, conn.sent[0].EventType())
}

func (s *RegistrySuite) TestSendToUnknownPlayerIsNoop() {
	s.NotPanics(func() {
		s.registry.SendTo("ghost", protocol.NewQueueJoined(1))
	})
}

func (s *RegistrySuite) TestRegisterSupersedesAndClosesOld() {
	old := &fakeConn{}
	replacement := &fakeConn{}

	s.registry.Register("p1", old)
	s.registry.Register("p1", replacement)

	s.True(old.closed)

	s.registry.SendTo("p1", protocol.NewQueueJoined(1))
	s.Empty(old.sent)
	s.Len(replacement.sent, 1)
}

func (s *RegistrySuite) TestUnregisterOnlyRemovesSameConn() {
	old := &fakeConn{}
	replacement := &fakeConn{}

	s.registry.Register("p1", old)
	s.registry.Register("p1", replacement)

	// The superseded connection's cleanup must not evict the replacement
	s.registry.Unregister("p1", old)
	s.True(s.registry.IsConnected("p1"))

	s.registry.Unregister("p1", replacement)
	s.False(s.registry.IsConnected("p1"))
}

func (s *RegistrySuite) TestDisconnectClosesAndRemoves() {
	conn := &fakeConn{}
	s.registry.Register("p1", conn)

	s.registry.Disconnect("p1")

	s.True(conn.closed)
	s.False(s.registry.IsConnected("p1"))

	s.NotPanics(func() { s.registry.Disconnect("p1") })
}

func (s *RegistrySuite) TestSendToManyIsolatesFailures() {
	failing := &fakeConn{sendErr: errors.New("buffer full")}
	healthy := &fakeConn{}

	s.registry.Register("p1", failing)
	s.registry.Register("p2", healthy)

	s.registry.SendToMany([]model.PlayerID{"p1", "p2"}, protocol.NewQueueJoined(1))

	s.Len(healthy.sent, 1)
}

func (s *RegistrySuite) TestSendToManyExcept() {
	a := &fakeConn{}
	b := &fakeConn{}

	s.registry.Register("p1", a)
	s.registry.Register("p2", b)

	s.registry.SendToManyExcept([]model.PlayerID{"p1", "p2"}, "p1", protocol.NewQueueJoined(1))

	s.Empty(a.sent)
	s.Len(b.sent, 1)
}

func (s *RegistrySuite) TestCount() {
	s.Equal(0, s.registry.Count())
	s.registry.Register("p1", &fakeConn{})
	s.registry.Register("p2", &fakeConn{})
	s.Equal(2, s.registry.Count())
}
