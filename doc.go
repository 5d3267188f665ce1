// Package bearer issues and validates bearer credentials for HTTP clients.
//
// Three cooperating pieces make up the flow:
//   - A credential store (any IdentityProvider) verifies a username/password
//     pair against a stored bcrypt hash.
//   - A TokenService signs a time-limited JWT for the authenticated identity.
//   - The middleware/bearerware package gates protected routes, attaching the
//     decoded claims to the request context or rejecting the request.
//
// Token verification is stateless: any holder of the shared signing key can
// check authenticity and expiry without consulting the store. Expiry is the
// only invalidation mechanism; there is no revocation list.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by Auther to describe
//     login outcomes. Sinks run best-effort (errors are logged) so you can
//     forward events to a database or queue without blocking authentication.
package bearer
