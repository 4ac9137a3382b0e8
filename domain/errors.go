package domain

import "errors"

// Failure taxonomy for the pipelines. Adapters wrap these sentinels with
// fmt.Errorf("%w: ...") so the API layer can classify with errors.Is.
var (
	// ErrInput indicates a malformed request (missing or invalid field).
	ErrInput = errors.New("invalid request")

	// ErrUnreachable indicates a capability service could not be reached.
	ErrUnreachable = errors.New("upstream service unreachable")

	// ErrUnrecognized indicates the transcription backend could not make
	// sense of the audio. Recoverable: the translate pipeline absorbs it.
	ErrUnrecognized = errors.New("audio not recognized")

	// ErrUnsupportedLanguage indicates an upstream service rejected the
	// requested language code.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrSynthesisFailed indicates text-to-speech failed after the rest of
	// the pipeline succeeded.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrChatFailed indicates the conversation model failed to produce a
	// usable reply.
	ErrChatFailed = errors.New("chat generation failed")

	// ErrEmptyReply indicates the model returned no text.
	ErrEmptyReply = errors.New("empty model reply")

	// ErrNotFound indicates an artifact lookup miss, including names that
	// try to escape the managed directory.
	ErrNotFound = errors.New("artifact not found")
)
