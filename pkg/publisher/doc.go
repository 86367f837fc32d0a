// Package publisher drives the edit workflow of the Google Play publishing API.
//
// Every publishing change happens within an edit: a remote changeset which is
// opened, modified and finally committed. A Publisher owns one authenticated
// session (an EditsService) and exposes two operations:
//
//   - ListBundles opens an edit, lists the bundles visible within that edit,
//     then discards it.
//   - UploadAndRelease opens an edit, uploads an app bundle, updates a release
//     track to serve the new version code and commits the edit.
//
// An upload attempt goes through the following stages:
//
//	START -> EDIT_OPEN -> UPLOADED -> TRACK_UPDATED -> COMMITTED
//
// Any step may fail, which moves the attempt to FAILED and skips all the
// remaining steps. In particular, an edit is never committed after a failed
// upload or track update. Nothing is retried.
package publisher
