// Package config loads declarative client definitions from YAML files and
// the environment, and turns them into pipeline builders.
//
// A definition names its middleware in order, optionally an adapter, and
// the verb surface:
//
//	name: github
//	middleware:
//	  - name: base_url
//	    options: "https://api.github.com"
//	  - name: headers
//	    options:
//	      - name: Accept
//	        value: application/vnd.github+json
//	adapter:
//	  name: httpc
//	verbs:
//	  except: [trace]
//
// Option lists of name/value entries become ordered pair sequences. A
// mapping stays a map, so a map-shaped header declaration is rejected by
// the compiler exactly like one made in code.
package config
