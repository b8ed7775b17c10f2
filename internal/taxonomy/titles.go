package taxonomy

import (
	"sort"
	"strings"
	"sync"
)

// jobTitleSkills maps lowercased job titles to the skills the role is
// expected to require. Titles not listed fall back to extracting known
// skills from the title text itself.
var jobTitleSkills = map[string][]string{
	"software engineer": {
		"Python", "Java", "C++", "JavaScript", "TypeScript", "Git",
		"REST API", "Docker", "Kubernetes", "CI/CD", "Agile", "SQL",
	},
	"full stack developer": {
		"React", "Next.js", "Angular", "Vue", "Node.js", "Express",
		"HTML", "CSS", "JavaScript", "TypeScript", "MongoDB", "MySQL",
		"PostgreSQL", "REST API", "GraphQL", "Docker", "AWS", "Nginx", "CI/CD",
	},
	"frontend developer": {
		"React", "Next.js", "Vue", "Angular", "Svelte", "TypeScript",
		"HTML", "CSS", "Sass", "Webpack", "Redux", "Tailwind",
	},
	"backend developer": {
		"Python", "Java", "Go", "Node.js", "Express", "Django", "Flask",
		"FastAPI", "SQL", "MongoDB", "PostgreSQL", "Redis", "Elasticsearch",
		"REST API", "GraphQL", "Microservices", "Docker", "Kubernetes",
		"AWS", "Kafka",
	},
	"data scientist": {
		"Python", "SQL", "Pandas", "NumPy", "Scikit-learn", "TensorFlow",
		"PyTorch", "Keras", "Statistics", "Data Visualization", "NLP",
		"Deep Learning", "Machine Learning",
	},
	"machine learning engineer": {
		"Python", "TensorFlow", "PyTorch", "Scikit-learn", "MLOps",
		"Docker", "Kubernetes", "Airflow", "AWS", "GCP", "Deep Learning",
		"Computer Vision", "NLP", "Transformers", "FastAPI",
	},
	"data engineer": {
		"Python", "Java", "Scala", "Spark", "Hadoop", "Airflow", "Kafka",
		"Snowflake", "BigQuery", "PostgreSQL", "MongoDB", "AWS", "SQL",
	},
	"data analyst": {
		"SQL", "Power BI", "Tableau", "Python", "Pandas", "Statistics",
		"Data Visualization",
	},
	"devops engineer": {
		"Linux", "Bash", "Docker", "Kubernetes", "Jenkins", "AWS", "Azure",
		"GCP", "Terraform", "Ansible", "Prometheus", "Grafana", "CI/CD",
		"Nginx", "Git",
	},
	"cloud engineer": {
		"AWS", "Azure", "GCP", "Terraform", "Docker", "Kubernetes",
		"Serverless", "Linux", "CI/CD",
	},
	"site reliability engineer": {
		"Linux", "Kubernetes", "Prometheus", "Grafana", "Ansible",
		"Terraform", "AWS", "GCP", "Python", "Bash",
	},
	"product manager": {
		"Agile", "Scrum", "SQL", "Stakeholder Management", "Communication",
		"Data Visualization", "Project Management",
	},
	"project manager": {
		"Project Management", "Agile", "Scrum", "Leadership",
		"Communication", "Stakeholder Management",
	},
	"mobile developer": {
		"Swift", "Kotlin", "React", "TypeScript", "REST API", "Git",
	},
}

// jobTitleKeys returns the known titles in a stable order, so partial
// matching stays deterministic when several titles could apply.
var jobTitleKeys = sync.OnceValue(func() []string {
	keys := make([]string, 0, len(jobTitleSkills))
	for key := range jobTitleSkills {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
})

// ExpectedSkillsForTitle derives the expected skill set for a job title.
// Direct lookup first, then partial title containment either way, then a
// fallback that extracts known taxonomy skills from the title text.
// The returned list may be empty, which the engine treats as an input error.
func (t *Table) ExpectedSkillsForTitle(title string) []string {
	lower := strings.ToLower(strings.TrimSpace(title))
	if lower == "" {
		return nil
	}

	if skills, ok := jobTitleSkills[lower]; ok {
		return append([]string(nil), skills...)
	}

	for _, key := range jobTitleKeys() {
		if strings.Contains(lower, key) {
			return append([]string(nil), jobTitleSkills[key]...)
		}
	}
	// Reverse containment catches abbreviated titles like "backend dev"
	// against "backend developer" only when the title is a prefix fragment.
	for _, key := range jobTitleKeys() {
		if strings.Contains(key, lower) {
			return append([]string(nil), jobTitleSkills[key]...)
		}
	}

	return t.ExtractSkills(title)
}
