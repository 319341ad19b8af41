// Package password implements Argon2id password hashing.
//
// Hashes are encoded as PHC strings and verified with strict parsing,
// constant-time comparison, and anti-DoS bounds on attacker-supplied
// hash parameters.
package password
