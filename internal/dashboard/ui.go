package dashboard

// The interfaces below are the seams between this package and whatever shell
// hosts it. The shell decides how a confirmation dialog, an alert box, a new
// browsing context or a file save actually look.

// Confirmer asks the user to approve a destructive or irreversible action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Alerter shows the user a blocking message.
type Alerter interface {
	Alert(message string)
}

// Opener submits a payload to a URL in a new browsing context. Fire and
// forget; the caller gets no success or failure signal.
type Opener interface {
	Open(url string, payload []byte)
}

// Saver persists downloaded bytes under a suggested filename.
type Saver interface {
	Save(filename string, data []byte) error
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlertFunc adapts a function to Alerter.
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// OpenFunc adapts a function to Opener.
type OpenFunc func(url string, payload []byte)

func (f OpenFunc) Open(url string, payload []byte) { f(url, payload) }

// SaveFunc adapts a function to Saver.
type SaveFunc func(filename string, data []byte) error

func (f SaveFunc) Save(filename string, data []byte) error { return f(filename, data) }
