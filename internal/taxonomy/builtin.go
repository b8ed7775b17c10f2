package taxonomy

import "github.com/sha9506/HireRank/internal/types"

// DefaultVersion identifies the built-in taxonomy table.
const DefaultVersion = "v1"

// Load compiles the built-in skill taxonomy. Each call returns a fresh
// table, so alternate taxonomies can be constructed for tests via NewTable.
func Load() (*Table, error) {
	return NewTable(DefaultVersion, builtinTerms)
}

// builtinTerms is the default skill vocabulary with synonym spellings and
// category buckets.
var builtinTerms = []SkillTerm{
	// Languages and general backend
	{Canonical: "Python", Category: types.CategoryBackend},
	{Canonical: "Java", Category: types.CategoryBackend},
	{Canonical: "Go", Synonyms: []string{"Golang"}, Category: types.CategoryBackend},
	{Canonical: "Rust", Category: types.CategoryBackend},
	{Canonical: "Ruby", Category: types.CategoryBackend},
	{Canonical: "PHP", Category: types.CategoryBackend},
	{Canonical: "C++", Category: types.CategoryBackend},
	{Canonical: "C#", Category: types.CategoryBackend},
	{Canonical: "Scala", Category: types.CategoryBackend},
	{Canonical: "Kotlin", Category: types.CategoryBackend},
	{Canonical: "Swift", Category: types.CategoryBackend},
	{Canonical: "Node.js", Synonyms: []string{"NodeJS", "Node"}, Category: types.CategoryBackend},
	{Canonical: "Express", Synonyms: []string{"Express.js", "ExpressJS"}, Category: types.CategoryBackend},
	{Canonical: "Django", Category: types.CategoryBackend},
	{Canonical: "Flask", Category: types.CategoryBackend},
	{Canonical: "FastAPI", Category: types.CategoryBackend},
	{Canonical: "Spring Boot", Synonyms: []string{"Spring"}, Category: types.CategoryBackend},
	{Canonical: "REST API", Synonyms: []string{"REST", "RESTful"}, Category: types.CategoryBackend},
	{Canonical: "GraphQL", Category: types.CategoryBackend},
	{Canonical: "gRPC", Category: types.CategoryBackend},
	{Canonical: "Microservices", Synonyms: []string{"Microservice"}, Category: types.CategoryBackend},

	// Frontend
	{Canonical: "JavaScript", Synonyms: []string{"JS"}, Category: types.CategoryFrontend},
	{Canonical: "TypeScript", Synonyms: []string{"TS"}, Category: types.CategoryFrontend},
	{Canonical: "React", Synonyms: []string{"ReactJS", "React.js"}, Category: types.CategoryFrontend},
	{Canonical: "Angular", Synonyms: []string{"AngularJS"}, Category: types.CategoryFrontend},
	{Canonical: "Vue", Synonyms: []string{"VueJS", "Vue.js"}, Category: types.CategoryFrontend},
	{Canonical: "Next.js", Synonyms: []string{"NextJS"}, Category: types.CategoryFrontend},
	{Canonical: "Svelte", Category: types.CategoryFrontend},
	{Canonical: "HTML", Synonyms: []string{"HTML5"}, Category: types.CategoryFrontend},
	{Canonical: "CSS", Synonyms: []string{"CSS3"}, Category: types.CategoryFrontend},
	{Canonical: "Sass", Synonyms: []string{"SCSS"}, Category: types.CategoryFrontend},
	{Canonical: "Tailwind", Synonyms: []string{"TailwindCSS"}, Category: types.CategoryFrontend},
	{Canonical: "Webpack", Category: types.CategoryFrontend},
	{Canonical: "Redux", Category: types.CategoryFrontend},

	// Databases and data tooling
	{Canonical: "SQL", Category: types.CategoryDatabase},
	{Canonical: "PostgreSQL", Synonyms: []string{"Postgres"}, Category: types.CategoryDatabase},
	{Canonical: "MySQL", Category: types.CategoryDatabase},
	{Canonical: "MongoDB", Synonyms: []string{"Mongo"}, Category: types.CategoryDatabase},
	{Canonical: "Redis", Category: types.CategoryDatabase},
	{Canonical: "Elasticsearch", Category: types.CategoryDatabase},
	{Canonical: "Cassandra", Category: types.CategoryDatabase},
	{Canonical: "DynamoDB", Category: types.CategoryDatabase},
	{Canonical: "SQLite", Category: types.CategoryDatabase},
	{Canonical: "Spark", Synonyms: []string{"PySpark"}, Category: types.CategoryDatabase},
	{Canonical: "Hadoop", Category: types.CategoryDatabase},
	{Canonical: "Kafka", Category: types.CategoryDatabase},
	{Canonical: "Airflow", Category: types.CategoryDatabase},
	{Canonical: "Snowflake", Category: types.CategoryDatabase},
	{Canonical: "BigQuery", Category: types.CategoryDatabase},
	{Canonical: "Tableau", Category: types.CategoryDatabase},
	{Canonical: "Power BI", Synonyms: []string{"PowerBI"}, Category: types.CategoryDatabase},

	// Infrastructure and cloud
	{Canonical: "AWS", Synonyms: []string{"Amazon Web Services"}, Category: types.CategoryInfrastructure},
	{Canonical: "Azure", Category: types.CategoryInfrastructure},
	{Canonical: "GCP", Synonyms: []string{"Google Cloud"}, Category: types.CategoryInfrastructure},
	{Canonical: "Docker", Category: types.CategoryInfrastructure},
	{Canonical: "Kubernetes", Synonyms: []string{"K8s"}, Category: types.CategoryInfrastructure},
	{Canonical: "Terraform", Category: types.CategoryInfrastructure},
	{Canonical: "Ansible", Category: types.CategoryInfrastructure},
	{Canonical: "Jenkins", Category: types.CategoryInfrastructure},
	{Canonical: "CI/CD", Synonyms: []string{"CICD"}, Category: types.CategoryInfrastructure},
	{Canonical: "GitHub Actions", Category: types.CategoryInfrastructure},
	{Canonical: "Git", Category: types.CategoryInfrastructure},
	{Canonical: "Linux", Category: types.CategoryInfrastructure},
	{Canonical: "Bash", Synonyms: []string{"Shell Scripting"}, Category: types.CategoryInfrastructure},
	{Canonical: "Nginx", Category: types.CategoryInfrastructure},
	{Canonical: "Prometheus", Category: types.CategoryInfrastructure},
	{Canonical: "Grafana", Category: types.CategoryInfrastructure},
	{Canonical: "Serverless", Synonyms: []string{"Lambda"}, Category: types.CategoryInfrastructure},

	// Domain-specific (ML/AI and adjacent)
	{Canonical: "Machine Learning", Synonyms: []string{"ML"}, Category: types.CategoryDomainSpecific},
	{Canonical: "Deep Learning", Category: types.CategoryDomainSpecific},
	{Canonical: "NLP", Synonyms: []string{"Natural Language Processing"}, Category: types.CategoryDomainSpecific},
	{Canonical: "Computer Vision", Category: types.CategoryDomainSpecific},
	{Canonical: "TensorFlow", Category: types.CategoryDomainSpecific},
	{Canonical: "PyTorch", Category: types.CategoryDomainSpecific},
	{Canonical: "Keras", Category: types.CategoryDomainSpecific},
	{Canonical: "Scikit-learn", Synonyms: []string{"sklearn"}, Category: types.CategoryDomainSpecific},
	{Canonical: "Pandas", Category: types.CategoryDomainSpecific},
	{Canonical: "NumPy", Category: types.CategoryDomainSpecific},
	{Canonical: "Transformers", Category: types.CategoryDomainSpecific},
	{Canonical: "MLOps", Category: types.CategoryDomainSpecific},
	{Canonical: "Statistics", Category: types.CategoryDomainSpecific},
	{Canonical: "Data Visualization", Category: types.CategoryDomainSpecific},

	// Soft skills
	{Canonical: "Leadership", Category: types.CategorySoftSkill},
	{Canonical: "Communication", Category: types.CategorySoftSkill},
	{Canonical: "Teamwork", Category: types.CategorySoftSkill},
	{Canonical: "Problem Solving", Category: types.CategorySoftSkill},
	{Canonical: "Critical Thinking", Category: types.CategorySoftSkill},
	{Canonical: "Agile", Category: types.CategorySoftSkill},
	{Canonical: "Scrum", Category: types.CategorySoftSkill},
	{Canonical: "Project Management", Category: types.CategorySoftSkill},
	{Canonical: "Stakeholder Management", Category: types.CategorySoftSkill},
}
