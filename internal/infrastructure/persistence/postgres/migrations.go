package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE FACULTIES
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create faculties table
-- Version: 001

CREATE TABLE IF NOT EXISTS faculties (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    code VARCHAR(100) NOT NULL,
    name VARCHAR(200) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

-- Faculty codes are unique case-insensitively; the database arbitrates
-- concurrent creation.
CREATE UNIQUE INDEX IF NOT EXISTS idx_faculties_code ON faculties(LOWER(code));
`

const migration001Down = `
DROP TABLE IF EXISTS faculties;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create students table
-- Version: 002

CREATE TABLE IF NOT EXISTS students (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    student_id VARCHAR(8) NOT NULL UNIQUE,
    email VARCHAR(255) NOT NULL UNIQUE,
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    date_of_birth DATE NOT NULL,
    gender VARCHAR(10) NOT NULL,
    phone_number VARCHAR(20) NOT NULL,

    -- Owned value objects stored as documents; the aggregate revalidates
    -- them on load.
    address JSONB NOT NULL,
    identity_document JSONB NOT NULL,

    faculty_id UUID NOT NULL REFERENCES faculties(id),
    program_id VARCHAR(100) NOT NULL,
    class_id VARCHAR(100),
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    enrollment_date DATE NOT NULL,
    graduation_date DATE,
    gpa DECIMAL(3,2),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_status CHECK (status IN ('active', 'graduated', 'dropped_out', 'suspended', 'on_leave')),
    CONSTRAINT valid_gender CHECK (gender IN ('male', 'female', 'other')),
    CONSTRAINT valid_gpa CHECK (gpa IS NULL OR (gpa >= 0 AND gpa <= 4)),
    CONSTRAINT student_id_digits CHECK (student_id ~ '^\d{8}$')
);

CREATE INDEX IF NOT EXISTS idx_students_faculty ON students(faculty_id);
CREATE INDEX IF NOT EXISTS idx_students_status ON students(status);
CREATE INDEX IF NOT EXISTS idx_students_last_name ON students(last_name);
CREATE INDEX IF NOT EXISTS idx_students_enrollment ON students(enrollment_date);
`

const migration002Down = `
DROP TABLE IF EXISTS students;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE REGISTRIES
// Email-domain allow-list and per-country phone validation configs.
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create registry tables
-- Version: 003

CREATE TABLE IF NOT EXISTS email_domains (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    domain VARCHAR(255) NOT NULL UNIQUE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS phone_configs (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    country VARCHAR(100) NOT NULL,
    country_code VARCHAR(5) NOT NULL,
    pattern VARCHAR(500) NOT NULL,
    pattern_repaired BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_phone_configs_country ON phone_configs(LOWER(country));

-- Best-match iteration reads all configs ordered by country.
CREATE INDEX IF NOT EXISTS idx_phone_configs_code ON phone_configs(country_code);
`

const migration003Down = `
DROP TABLE IF EXISTS phone_configs;
DROP TABLE IF EXISTS email_domains;
`
