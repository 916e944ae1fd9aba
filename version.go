package mcdgen

// Version is the current mcdgen release.
const Version = "0.1.0"
