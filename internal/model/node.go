package model

import (
	"fmt"
	"strings"
)

// NodeID addresses one element of the host's UI tree, e.g.
// "wnd[0]/usr/txtRSYST-BNAME". It is only meaningful while the session that
// produced it is connected.
type NodeID string

// Node is an element of the host's UI tree.
type Node struct {
	ID       NodeID `yaml:"id"                 json:"id"`
	Type     string `yaml:"type,omitempty"     json:"type,omitempty"`     // Host type tag, e.g. GuiTextField
	Name     string `yaml:"name,omitempty"     json:"name,omitempty"`     // Technical name
	Text     string `yaml:"text,omitempty"     json:"text,omitempty"`     // Display text, may be empty
	Children []Node `yaml:"children,omitempty" json:"children,omitempty"` // Visited in the given order
}

// WindowID returns the id of the n-th window of a session.
func WindowID(n int) NodeID {
	return NodeID(fmt.Sprintf("wnd[%d]", n))
}

// MainWindow is the session's main window.
const MainWindow NodeID = "wnd[0]"

// Window returns the window segment of id ("wnd[1]" for "wnd[1]/usr/btnOK").
// Absolute ids such as "/app/con[0]/ses[0]/wnd[0]/usr" are handled too.
func (id NodeID) Window() NodeID {
	for _, seg := range strings.Split(string(id), "/") {
		if strings.HasPrefix(seg, "wnd[") {
			return NodeID(seg)
		}
	}
	return ""
}

// Last returns the final path segment of id.
func (id NodeID) Last() string {
	s := strings.TrimRight(string(id), "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

func (id NodeID) String() string { return string(id) }

// Credentials are fixed once a session has been constructed.
type Credentials struct {
	System   string `yaml:"system"   json:"system"`
	User     string `yaml:"user"     json:"user"`
	Password string `yaml:"-"        json:"-"`
	Language string `yaml:"language" json:"language"`
}

// SessionInfo is a snapshot of the live session's characteristics. It is
// recomputed on demand and never authoritative.
type SessionInfo struct {
	SystemName  string `yaml:"system_name"      json:"system_name"`
	Client      string `yaml:"client"           json:"client"`
	User        string `yaml:"user"             json:"user"`
	Program     string `yaml:"program_name"     json:"program_name"`
	Transaction string `yaml:"transaction_code" json:"transaction_code"`
}
