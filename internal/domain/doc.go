// Package domain contains the core entities of the users service: the User
// record, its embedded Social links, and the normalized patch used to create
// and update users. It has no knowledge of HTTP or storage.
package domain
