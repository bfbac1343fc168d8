package ui

// previewDoneMsg contains the result of a preview pager command
type previewDoneMsg struct {
	key string
	err error
}

// clearStatusMsg clears the status line after a delay
type clearStatusMsg struct {
	seq int
}
