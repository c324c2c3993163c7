// Package dictionary loads RADIUS attribute dictionaries and answers lookups
// against them.
//
// A dictionary file is line oriented:
//
//	ATTRIBUTE <name> <code> <type> [<opt1>[,<opt2>...]]
//	VALUE <attr-name> <value-name> <number>
//	VENDOR <name> <enterprise-number>
//	BEGIN-VENDOR <name>
//	END-VENDOR
//	$INCLUDE <path>
//	# comment to end of line
//
// Loading fills three collections on a Dictionary handle (attributes,
// enumerated values, vendors). Records are immutable once inserted. Lookups
// scan newest-first, so a later definition shadows an earlier one with the
// same key.
//
// The first malformed line aborts the whole load, including loads of files
// reached through $INCLUDE. Records inserted by earlier lines stay in place.
//
// A Dictionary is not safe for concurrent use. Load it from one goroutine,
// then share it read-only until Free is called.
package dictionary
