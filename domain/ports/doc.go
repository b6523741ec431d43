// Package ports defines the interfaces between the bridge core and its
// collaborators: the native engine, fault reporting, configuration parsing,
// parameter validation and operation invocation. Infrastructure adapters
// implement these interfaces.
package ports
