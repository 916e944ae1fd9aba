/*
Package ports defines the driven ports (interfaces) for the mcdgen session.

These interfaces decouple the session's workflows from the vendor toolkit
binding and from the notification surface, allowing both to be substituted
with test doubles.

# Key Interfaces

  - Toolkit: the four vendor operations (parse, convert-to-MCD,
    convert-to-JSON, calculate) plus reading an existing configuration file.
  - Definition: an opaque handle to a vendor configuration object.
  - Notifier: best-effort, non-fatal user-facing notices.
*/
package ports
