// Package samples holds built-in code snippets for demoing the reviewer
// without supplying a file.
package samples

import (
	"fmt"
	"sort"
)

// Sample is one named demo snippet.
type Sample struct {
	Name     string
	Language string
	Code     string
}

var registry = map[string]Sample{}

func register(s Sample) {
	registry[s.Name] = s
}

// Names lists the available sample names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named sample.
func Get(name string) (Sample, error) {
	s, ok := registry[name]
	if !ok {
		return Sample{}, fmt.Errorf("unknown sample %q (available: %v)", name, Names())
	}
	return s, nil
}

func init() {
	register(Sample{
		Name:     "python-clean",
		Language: "python",
		Code: `from __future__ import annotations

from dataclasses import dataclass


@dataclass(frozen=True)
class Money:
    """Immutable value object representing a monetary amount."""

    amount: float
    currency: str = "USD"

    def __post_init__(self) -> None:
        if self.amount < 0:
            raise ValueError(f"Amount must be non-negative, got {self.amount}")

    def add(self, other: Money) -> Money:
        """Return a new Money instance with the sum of both amounts."""
        if self.currency != other.currency:
            raise ValueError(
                f"Cannot add {self.currency} and {other.currency}"
            )
        return Money(amount=self.amount + other.amount, currency=self.currency)

    def display(self) -> str:
        """Human-friendly representation."""
        return f"{self.currency} {self.amount:,.2f}"
`,
	})

	register(Sample{
		Name:     "python-messy",
		Language: "python",
		Code: `import os, sys, json, re
from datetime import *

def proc(d):
    r = []
    for i in range(len(d)):
        x = d[i]
        if x["type"] == "A":
            v = x["val"] * 1.1
        elif x["type"] == "B":
            v = x["val"] * 0.9
        elif x["type"] == "C":
            v = x["val"] * 1.05
        else:
            v = x["val"]
        x["result"] = v
        x["ts"] = datetime.now().isoformat()
        r.append(x)
    return r

def save(d, fn):
    f = open(fn, "w")
    f.write(json.dumps(d))
    f.close()

data = [{"type":"A","val":100},{"type":"B","val":200},{"type":"C","val":300},{"type":"D","val":400}]
result = proc(data)
save(result, "out.json")
print("done")
`,
	})

	register(Sample{
		Name:     "javascript-api-handler",
		Language: "javascript",
		Code: `const express = require('express');
const router = express.Router();

router.get('/users', async (req, res) => {
  try {
    const page = parseInt(req.query.page) || 1;
    const limit = parseInt(req.query.limit) || 20;
    const offset = (page - 1) * limit;

    const users = await db.query(
      'SELECT id, name, email FROM users LIMIT ? OFFSET ?',
      [limit, offset]
    );

    const [{ total }] = await db.query('SELECT COUNT(*) as total FROM users');

    res.json({
      data: users,
      pagination: { page, limit, total, pages: Math.ceil(total / limit) },
    });
  } catch (err) {
    console.error('Failed to fetch users:', err);
    res.status(500).json({ error: 'Internal server error' });
  }
});

module.exports = router;
`,
	})

	register(Sample{
		Name:     "java-singleton",
		Language: "java",
		Code: `public class ConfigManager {
    private static ConfigManager instance;
    private Map<String, String> config = new HashMap<>();
    private String filePath;

    private ConfigManager() {}

    public static ConfigManager getInstance() {
        if (instance == null) {
            instance = new ConfigManager();
        }
        return instance;
    }

    public void loadConfig(String path) {
        this.filePath = path;
        try {
            BufferedReader reader = new BufferedReader(new FileReader(path));
            String line;
            while ((line = reader.readLine()) != null) {
                String[] parts = line.split("=");
                if (parts.length == 2) {
                    config.put(parts[0].trim(), parts[1].trim());
                }
            }
            reader.close();
        } catch (IOException e) {
            e.printStackTrace();
        }
    }

    public String get(String key) {
        return config.get(key);
    }

    public void set(String key, String value) {
        config.put(key, value);
    }
}
`,
	})
}
