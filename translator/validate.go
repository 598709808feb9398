package translator

import (
	"lingopher/apierror"
)

// maxTextsPerRequest is the largest batch the service accepts in one call.
const maxTextsPerRequest = 50

// validateTexts enforces the input invariants before any network I/O: at
// least one text, no empty texts, and the batch size cap. Batches are
// all-or-nothing, so one bad element rejects the whole call.
func validateTexts(texts []string) error {
	if len(texts) == 0 {
		return apierror.Errorf(apierror.ErrorCodeInvalidInput,
			"texts parameter must contain at least one non-empty string")
	}
	if len(texts) > maxTextsPerRequest {
		return apierror.Errorf(apierror.ErrorCodeInvalidInput,
			"texts parameter exceeds the maximum of %d texts per request", maxTextsPerRequest)
	}
	for i, text := range texts {
		if text == "" {
			return apierror.Errorf(apierror.ErrorCodeInvalidInput,
				"texts parameter must not contain empty strings (index %d)", i)
		}
	}
	return nil
}
