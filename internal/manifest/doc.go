// Package manifest loads bundler build manifests and exposes their entry graph.
//
// A manifest maps build keys (usually source paths) to the hashed output
// file they produced, together with the CSS, assets and chunks they depend on:
//
//	{
//	  "resources/scripts/main.ts": {
//	    "file": "assets/main.4889e940.js",
//	    "src": "resources/scripts/main.ts",
//	    "isEntry": true,
//	    "css": ["assets/main.b9e0c3e1.css"],
//	    "imports": ["_vendor.46c3e2c8.js"],
//	    "dynamicImports": ["resources/scripts/admin.ts"]
//	  }
//	}
//
// Key order of the file is preserved, so anything that walks the manifest
// does so deterministically.
//
// # Usage
//
//	store, err := manifest.NewStore(manifest.StoreOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := store.Load("public/build/manifest.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	entry, err := m.Get("resources/scripts/main.ts")
//
// # Error Handling
//
// Every load failure matches domain.ErrManifestNotFound. The cause is one of:
//   - ErrFileNotFound: manifest file does not exist
//   - ErrInvalidFormat: file is not a valid JSON/YAML object of entries
//   - ErrUnsupportedExt: unsupported file extension
//
// Lookups of unknown keys match domain.ErrEntryNotFound.
package manifest
