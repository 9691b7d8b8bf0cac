// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "errors"

// errWebhookRejected is returned by the dispatcher when the webhook endpoint
// answered with an error status; the event stays queued and is retried.
var errWebhookRejected = errors.New("webhook rejected event")
