// Package loader fetches the site's XML documents (links and version) with
// bounded, strictly sequential retry.
//
// # Pipeline
//
//  1. Client.Fetch GETs the document; non-2xx statuses become *HTTPError
//  2. ParseLinks / ParseVersion tokenize the body; malformed XML becomes *ParseError
//  3. Steps 1-2 are retried with a constant backoff (default 3 attempts, 1 s apart)
//  4. Missing entries in a well-formed document are not errors here; callers
//     ask LinkSet.URL per id and receive *MissingElementError for gaps
//
// Each LoadLinks / LoadVersion call owns its own retry state, so the two
// documents can be loaded concurrently. Context cancellation stops retrying
// immediately.
//
// # Document Formats
//
//	<links>
//	  <link id="1"><url>https://www.youtube.com/@someone</url></link>
//	</links>
//
//	<info><version>2.4.1</version></info>
//
// Any root element is accepted; the first <version> element anywhere wins.
package loader
