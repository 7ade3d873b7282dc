package fixture

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

type session struct {
	host   *Host
	conn   *connection
	screen string
	texts  map[model.NodeID]string
	closed map[model.NodeID]bool
	info   model.SessionInfo
}

// windows returns the visible top-level windows. Callers hold host.mu.
func (s *session) windows() []model.Node {
	var out []model.Node
	for _, w := range s.host.tree.Screens[s.screen] {
		if !s.closed[w.ID] {
			out = append(out, w)
		}
	}
	return out
}

// node looks id up on the current screen. Callers hold host.mu.
func (s *session) node(id model.NodeID) (*model.Node, error) {
	id = normalizeID(id)
	if s.closed[id.Window()] {
		return nil, fmt.Errorf("%s: %w", id, platform.ErrNotFound)
	}
	n := model.FindNode(s.host.tree.Screens[s.screen], id)
	if n == nil {
		return nil, fmt.Errorf("%s: %w", id, platform.ErrNotFound)
	}
	return n, nil
}

// follow applies the first matching transition. Callers hold host.mu.
func (s *session) follow(op, target string) bool {
	for _, tr := range s.host.tree.Transitions {
		if tr.Op != op || tr.Target != target {
			continue
		}
		if tr.From != "" && tr.From != s.screen {
			continue
		}
		s.goTo(tr.To)
		if tr.Transaction != "" {
			s.info.Transaction = tr.Transaction
		}
		return true
	}
	return false
}

func (s *session) goTo(screen string) {
	s.screen = screen
	s.texts = map[model.NodeID]string{}
	s.closed = map[model.NodeID]bool{}
}

func (s *session) FindByID(id model.NodeID) (platform.Element, error) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	n, err := s.node(id)
	if err != nil {
		return nil, err
	}
	return &element{sess: s, id: n.ID}, nil
}

func (s *session) ObjectTree(root model.NodeID) (string, error) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	if root == "" {
		return model.ObjectTree(s.windows())
	}
	n, err := s.node(root)
	if err != nil {
		return "", err
	}
	return model.ObjectTree([]model.Node{*n})
}

func (s *session) ActiveWindow() (platform.Element, error) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	wins := s.windows()
	if len(wins) == 0 {
		return nil, fmt.Errorf("no open window: %w", platform.ErrNotFound)
	}
	return &element{sess: s, id: wins[len(wins)-1].ID}, nil
}

func (s *session) CreateSession() error {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.record(OpCreate, "", ""); err != nil {
		return err
	}
	if len(s.conn.sessions) >= maxSessions {
		return fmt.Errorf("maximum number of sessions (%d) reached", maxSessions)
	}
	s.conn.sessions = append(s.conn.sessions, h.newSession(s.conn, h.tree.homeScreen()))
	return nil
}

func (s *session) StartTransaction(tcode string) error {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	if err := s.host.record(OpTCode, "", tcode); err != nil {
		return err
	}
	s.follow(OpTCode, tcode)
	s.info.Transaction = tcode
	return nil
}

func (s *session) EndTransaction() error {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.record(OpEnd, "", ""); err != nil {
		return err
	}
	s.goTo(h.tree.homeScreen())
	s.info.Transaction = h.tree.Info.Transaction
	return nil
}

func (s *session) Info() (model.SessionInfo, error) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.info, nil
}
