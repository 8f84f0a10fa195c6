package model

// VariantDestructive marks a notice that reports a failure.
const VariantDestructive = "destructive"

// Notice is a user-facing notification attached to a response.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

// Success builds a plain "Success" notice.
func Success(description string) Notice {
	return Notice{Title: "Success", Description: description}
}

// Failure builds a destructive "Error" notice.
func Failure(description string) Notice {
	return Notice{Title: "Error", Description: description, Variant: VariantDestructive}
}

// Failed reports whether the notice describes a failure.
func (n Notice) Failed() bool {
	return n.Variant == VariantDestructive
}
