package runtime

import (
	"fmt"

	prerrors "prflow.dev/prflow/internal/errors"
)

var errGitHubNotConfigured = fmt.Errorf("%w: no client configured", prerrors.ErrGHUnavailable)
