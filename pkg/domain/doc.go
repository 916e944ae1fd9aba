/*
Package domain holds the value types shared across the mcdgen module:
stage specifications, calculated parameters, warning lists, and the
sentinel errors that identify the failure modes of a controller session.

These types carry no behavior beyond what the wrapper itself needs; the
semantics of a configuration (units, machine models, parameter meaning)
live entirely inside the vendor toolkit behind the ports.Toolkit boundary.
*/
package domain
