package config

// ExampleFileName is the file written by init-config
const ExampleFileName = ".i18ngrd.yaml"

// ExampleConfig is the commented template written by init-config
const ExampleConfig = `# .i18ngrd.yaml
# Configuration file for i18ngrd

# Directory holding the translation catalogs (en.json, fr.yaml, ...).
# Leave empty to auto-detect src/assets/i18n, public/i18n, locales, ...
localesPath: src/assets/i18n

# Source tree to scan
srcPath: src

patterns:
  typescript:
    - "**/*.ts"
  html:
    - "**/*.html"
  # javascript:
  #   - "**/*.js"

# Keys configured elsewhere that should never be reported
ignoreKeys:
  # - app.version

# Wildcard rules, "*" matches any run of characters
ignorePatterns:
  # - debug.*
  # - "*.tooltip"

# Regular expressions, matched anywhere in the key
ignoreRegex:
  # - "^test\\."

# Catalog file names to skip
ignoreFiles:
  # - legacy.json

# Skip template literal and concatenation patterns
ignoreDynamicKeys: false

# Directories skipped while scanning (substring match on the path)
excludeDirs:
  - node_modules
  - dist
  - .git
  - .angular
  - coverage

# Source file name globs skipped while scanning
excludeFiles:
  # - "*.spec.ts"

# Only load these catalog languages (all when empty)
languages:
  # - en
  # - fr

# console, json, csv, xml or html
outputFormat: console

# summary, dynamicPatterns, ignored, unused, missing, usedKeys, translationKeys, config
outputSections:
  - summary
  - dynamicPatterns
  - ignored
  - unused
  - missing

# Write timestamped reports to this directory
# outputDir: reports

# Exit with status 1 when unused or missing keys are found
exitOnIssues: false

# Prometheus textfile and run history
# metricsFile: i18ngrd.prom
# historyDB: .i18ngrd/history.db
`
