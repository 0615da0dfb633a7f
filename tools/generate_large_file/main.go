// Large JavaScript File Generator
//
// This tool generates a large JavaScript file for performance testing and
// profiling. It writes a mix of declarations, classes, closures, templates and
// control flow so that every part of the lexer and parser gets exercised.
//
// Usage:
//
//	go run main.go > large.js
//	go run main.go 20000000 > large.js  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	nouns = []string{
		"account", "order", "invoice", "customer", "product",
		"session", "request", "response", "cache", "queue",
		"widget", "report", "token", "payload", "record",
	}

	verbs = []string{
		"load", "save", "fetch", "render", "validate",
		"parse", "format", "merge", "compute", "resolve",
	}

	fields = []string{
		"id", "name", "total", "status", "createdAt",
		"items", "owner", "tags", "price", "quantity",
	}

	statuses = []string{"pending", "active", "archived", "failed", "done"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	writeHeader()

	bytesWritten := 0
	functionCount := 0

	for i := 0; bytesWritten < targetSize; i++ {
		var output string

		switch rand.Intn(10) {
		case 0, 1: // 20% - Plain function with loops
			output = generateFunction(i)
			functionCount++

		case 2, 3: // 20% - Class with fields, accessors and methods
			output = generateClass(i)
			functionCount += 3

		case 4: // 10% - Arrow functions and array pipelines
			output = generateArrows(i)
			functionCount += 2

		case 5: // 10% - Async function with try/catch
			output = generateAsyncFunction(i)
			functionCount++

		case 6: // 10% - Object literal with methods and spread
			output = generateObjectLiteral(i)
			functionCount += 2

		case 7: // 10% - Switch statement
			output = generateSwitch(i)
			functionCount++

		case 8: // 10% - Generator
			output = generateGenerator(i)
			functionCount++

		case 9: // 10% - Templates and regular expressions
			output = generateTemplates(i)
			functionCount++
		}

		fmt.Print(output)
		bytesWritten += len(output)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d functions\n", bytesWritten, functionCount)
}

func writeHeader() {
	fmt.Println("// Large JavaScript File for Performance Testing")
	fmt.Println("// Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Println(`"use strict";`)
	fmt.Println()
	fmt.Println("const registry = new Map();")
	fmt.Println("const sleep = (ms) => new Promise((resolve) => setTimeout(resolve, ms));")
	fmt.Println()
}

func generateFunction(i int) string {
	name := identifier(i)
	field := pick(fields)

	return fmt.Sprintf(`function %s(list, limit = %d) {
  let total = 0;
  for (let i = 0; i < list.length && i < limit; i++) {
    const entry = list[i];
    if (entry == null || entry.%s === undefined) {
      continue;
    }
    total += entry.%s * %s;
  }
  while (total > %d) {
    total = total >>> 1;
  }
  return total;
}

`, name, rand.Intn(1000)+1, field, field, randNumber(), rand.Intn(100000))
}

func generateClass(i int) string {
	name := strings.Title(pick(nouns)) + strconv.Itoa(i) //nolint:staticcheck
	field := pick(fields)

	return fmt.Sprintf(`class %s {
  static count = 0;
  #%s = %s;

  constructor(options = {}) {
    this.options = { retries: %d, ...options };
    %s.count++;
  }

  get %s() {
    return this.#%s;
  }

  set %s(value) {
    this.#%s = value;
  }

  %s(input) {
    return input?.%s ?? this.#%s;
  }
}

`, name, field, randNumber(), rand.Intn(5)+1, name, field, field, field, field, pick(verbs), field, field)
}

func generateArrows(i int) string {
	name := identifier(i)
	field := pick(fields)

	return fmt.Sprintf(`const %s = (items) =>
  items
    .filter(({ %s }) => %s > %s)
    .map((item, index) => ({ ...item, index, label: `+"`${item.%s}-${index}`"+` }))
    .reduce((acc, item) => acc + item.%s, 0);

`, name, field, field, randNumber(), field, field)
}

func generateAsyncFunction(i int) string {
	name := identifier(i)
	noun := pick(nouns)

	return fmt.Sprintf(`async function %s(id) {
  try {
    const response = await fetch(`+"`/api/%s/${id}`"+`);
    if (!response.ok) {
      throw new Error("request failed: " + response.status);
    }
    const { data = [] } = await response.json();
    registry.set(id, data);
    return data;
  } catch (error) {
    await sleep(%d);
    return null;
  } finally {
    registry.delete("pending-" + id);
  }
}

`, name, noun, rand.Intn(500))
}

func generateObjectLiteral(i int) string {
	name := identifier(i)
	field := pick(fields)

	return fmt.Sprintf(`const %s = {
  %s: %s,
  status: %q,
  ["key" + %d]: true,
  async %s() {
    return this.%s;
  },
  get size() {
    return Object.keys(this).length;
  },
  ...registry.get(%q),
};

`, name, field, randNumber(), pick(statuses), i, pick(verbs), field, pick(nouns))
}

func generateSwitch(i int) string {
	name := identifier(i)

	var cases strings.Builder
	for _, status := range statuses {
		fmt.Fprintf(&cases, "    case %q:\n      return %d;\n", status, rand.Intn(100))
	}

	return fmt.Sprintf(`function %s(status) {
  switch (status) {
%s    default:
      return -1;
  }
}

`, name, cases.String())
}

func generateGenerator(i int) string {
	name := identifier(i)

	return fmt.Sprintf(`function* %s(start, end) {
  let current = start;
  do {
    yield current;
    current += %d;
  } while (current < end);
}

`, name, rand.Intn(9)+1)
}

func generateTemplates(i int) string {
	name := identifier(i)
	field := pick(fields)

	return fmt.Sprintf(`function %s(record) {
  const pattern = /^[a-z]+-\d{%d}$/i;
  const summary = `+"`${record.%s} (${pattern.test(record.id) ? \"valid\" : \"invalid\"})`"+`;
  return summary.length > %d ? summary.slice(0, %d) + "..." : summary;
}

`, name, rand.Intn(5)+1, field, rand.Intn(80)+20, rand.Intn(20)+10)
}

// Helper functions

func pick(list []string) string {
	return list[rand.Intn(len(list))]
}

func identifier(i int) string {
	return fmt.Sprintf("%s%s%d", pick(verbs), strings.Title(pick(nouns)), i) //nolint:staticcheck
}

func randNumber() string {
	if rand.Intn(2) == 0 {
		return strconv.Itoa(rand.Intn(10000))
	}
	return fmt.Sprintf("%.2f", rand.Float64()*1000)
}
