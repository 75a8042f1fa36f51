package window

import (
	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/domain/url"
)

// message is the closed union of everything that can enter the actor
// mailbox: commands from application code and demuxed native events.
// Unknown variants never exist; the dispatch switch is exhaustive.
type message interface {
	isMessage()
}

// --- Commands ---

type showMsg struct {
	// target is the explicitly requested destination; explicit is false
	// for show-with-default, which falls back to lastURL then homeURL.
	target   url.Target
	explicit bool
}

type setTitleMsg struct {
	title string
}

type iconizeMsg struct {
	restore bool
}

type rebuildMsg struct{}

type notifyMsg struct {
	text string
	opts NotifyOptions
}

type frameHandleMsg struct {
	reply chan port.Frame
}

type webviewHandleMsg struct {
	reply chan port.WebView
}

// stopMsg tears the actor down regardless of tray presence. Used by
// registry-level quit.
type stopMsg struct{}

// --- Native events ---

type closeRequestedMsg struct{}

type trayClickMsg struct {
	right bool
}

type newWindowMsg struct {
	uri string
}

type notifyEventMsg struct {
	native port.NativeNotification
	event  port.NotifyEvent
}

type watchdogTickMsg struct{}

func (showMsg) isMessage()           {}
func (setTitleMsg) isMessage()       {}
func (iconizeMsg) isMessage()        {}
func (rebuildMsg) isMessage()        {}
func (notifyMsg) isMessage()         {}
func (frameHandleMsg) isMessage()    {}
func (webviewHandleMsg) isMessage()  {}
func (stopMsg) isMessage()           {}
func (closeRequestedMsg) isMessage() {}
func (trayClickMsg) isMessage()      {}
func (newWindowMsg) isMessage()      {}
func (notifyEventMsg) isMessage()    {}
func (watchdogTickMsg) isMessage()   {}
