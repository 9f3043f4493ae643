// Package config loads morgue settings from YAML.
//
// Every layout threshold the extractor relies on is a named field here with
// the default it was tuned with, so a different newspaper can be handled by
// editing a file rather than the code:
//
//	extraction:
//	  author: Jane Doe
//	  min_body_words: 150
//	scan:
//	  workers: 4
//	log:
//	  level: debug
//
// Fields omitted from the file keep their defaults.
package config
