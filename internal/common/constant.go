package common

// SessionTokenHeaderName is the gRPC metadata key that carries the session
// token on outbound requests.
const SessionTokenHeaderName = "session_token"

// AdminSecretHeaderName carries the operator secret on admin HTTP routes that
// have no request body.
const AdminSecretHeaderName = "X-Admin-Secret"
