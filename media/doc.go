// Package media selects and publishes the photographs that accompany an
// extracted article.
//
// Scanned pages carry many embedded images that are not photographs:
// mastheads, ad borders, rules and specks. [Harvest] keeps the images that
// clear pixel and byte floors, and a [Publisher] uploads them through an
// [Uploader], either [S3Uploader] or [DirUploader].
package media
