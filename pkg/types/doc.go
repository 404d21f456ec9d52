// Package types defines the Contact entity, the DocumentStore contract that
// persistence backends implement, backend configuration, and the error
// taxonomy shared by the validator and the record store.
package types
