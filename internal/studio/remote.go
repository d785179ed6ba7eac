// Package studio drives one video job through the content-hosting studio's
// upload dialog, from navigation to publish confirmation. The browser itself
// is behind the RemoteUI interface; this package owns the flow, the waits,
// and the retry policy, not the transport.
package studio

import (
	"context"
	"time"
)

// RemoteUI is the remote-control capability the upload machine drives. Every
// call blocks until the interaction completes, the timeout elapses, or ctx is
// canceled. Implementations mark transient failures with Retryable.
type RemoteUI interface {
	// Navigate loads url and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// Click waits for selector to become clickable, then clicks it.
	Click(ctx context.Context, selector string, timeout time.Duration) error
	// Type replaces the content of the element at selector with text.
	Type(ctx context.Context, selector, text string, timeout time.Duration) error
	// SetFileInput supplies a local file path to a file-input element.
	SetFileInput(ctx context.Context, selector, path string, timeout time.Duration) error
	// WaitVisible blocks until selector is rendered and visible.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// Text reads the visible text content of the element at selector.
	Text(ctx context.Context, selector string, timeout time.Duration) (string, error)
	// ScrollBy scrolls the element at selector down by pixels.
	ScrollBy(ctx context.Context, selector string, pixels int, timeout time.Duration) error
}

// Selectors locates the fixed pieces of the studio upload dialog. The values
// target the present Studio layout; upstream changes are out of contract.
type Selectors struct {
	CreateButton   string
	UploadMenuItem string
	FileInput      string
	NextButton     string
	TitleBox       string
	DescriptionBox string
	UploadDialog   string
	ThumbnailInput string
	DoneButton     string
	SuccessClose   string
}

// DefaultSelectors returns the selector set for the current Studio layout.
func DefaultSelectors() Selectors {
	return Selectors{
		CreateButton:   "#create-icon",
		UploadMenuItem: "//tp-yt-paper-item[@role='menuitem']//yt-formatted-string[contains(text(), 'Upload videos')]",
		FileInput:      `input[type="file"]`,
		NextButton:     "#next-button",
		TitleBox:       `ytcp-social-suggestions-textbox[id='title-textarea'] div[id='textbox']`,
		DescriptionBox: `ytcp-social-suggestions-textbox[id='description-textarea'] div[id='textbox']`,
		UploadDialog:   "ytcp-uploads-dialog",
		ThumbnailInput: `input[type="file"][accept="image/jpeg,image/png"]`,
		DoneButton:     "#done-button",
		SuccessClose:   "#close-button",
	}
}
